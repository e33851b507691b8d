// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"archive/tar"
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0755,
			Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "runtime.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"jre-21/bin/java":    "#!/bin/true",
		"jre-21/lib/modules": "modules",
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(archivePath, dest))

	data, err := os.ReadFile(filepath.Join(dest, "jre-21", "bin", "java"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/true", string(data))

	info, err := os.Stat(filepath.Join(dest, "jre-21", "bin", "java"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "runtime.zip")

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("bin/java.exe")
	require.NoError(t, err)
	_, err = w.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(archivePath, dest))

	data, err := os.ReadFile(filepath.Join(dest, "bin", "java.exe"))
	require.NoError(t, err)
	assert.Equal(t, "MZ", string(data))
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"../escape": "boom",
	})

	err := Extract(archivePath, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "escape"))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.rar")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.Error(t, Extract(path, filepath.Join(dir, "out")))
}
