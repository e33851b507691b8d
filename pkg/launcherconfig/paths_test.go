// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathsHomeEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	paths, err := NewPaths()
	require.NoError(t, err)
	assert.Equal(t, home, paths.Home)
}

func TestResolveRootAllGlobalWithoutMarker(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), "/home/u/.karate")

	for _, category := range []Category{Archive, Runtime, Extensions} {
		root, provenance := paths.ResolveRoot(category)
		assert.Equal(t, filepath.Join("/home/u/.karate", category.DirName()), root)
		assert.Equal(t, Global, provenance)
	}
}

func TestResolveRootLocalOverrideWins(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, ProjectMarkerDirName, "dist"), 0755))

	paths := NewPathsAt(cwd, "/home/u/.karate")

	root, provenance := paths.ResolveRoot(Archive)
	assert.Equal(t, filepath.Join(cwd, ProjectMarkerDirName, "dist"), root)
	assert.Equal(t, Local, provenance)

	// Categories without a local dir stay global; no mixing.
	root, provenance = paths.ResolveRoot(Runtime)
	assert.Equal(t, filepath.Join("/home/u/.karate", "jre"), root)
	assert.Equal(t, Global, provenance)

	assert.True(t, paths.HasLocalOverrides())
}

func TestConfigOnlyMarkerResolvesGlobal(t *testing.T) {
	cwd := t.TempDir()
	marker := filepath.Join(cwd, ProjectMarkerDirName)
	require.NoError(t, os.MkdirAll(marker, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(marker, ProjectConfigFileName), []byte("channel: stable\n"), 0644))

	paths := NewPathsAt(cwd, "/home/u/.karate")

	for _, category := range []Category{Archive, Runtime, Extensions} {
		_, provenance := paths.ResolveRoot(category)
		assert.Equal(t, Global, provenance, category.String())
	}
	assert.False(t, paths.HasLocalOverrides())
}

func TestExtensionDirsUnionLocalFirst(t *testing.T) {
	cwd := t.TempDir()
	localExt := filepath.Join(cwd, ProjectMarkerDirName, "ext")
	require.NoError(t, os.MkdirAll(localExt, 0755))

	paths := NewPathsAt(cwd, "/home/u/.karate")

	dirs := paths.ExtensionDirs()
	require.Len(t, dirs, 2)
	assert.Equal(t, localExt, dirs[0])
	assert.Equal(t, filepath.Join("/home/u/.karate", "ext"), dirs[1])
}

func TestCacheAlwaysGlobal(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, ProjectMarkerDirName, CacheDirName), 0755))

	paths := NewPathsAt(cwd, "/home/u/.karate")
	assert.Equal(t, filepath.Join("/home/u/.karate", CacheDirName), paths.CacheDir())
	assert.Equal(t, filepath.Join("/home/u/.karate", CacheDirName, ManifestCacheFileName), paths.ManifestCachePath())
}

func TestLicenseFilesUnderHome(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), "/home/u/.karate")
	files := paths.LicenseFiles()
	assert.Contains(t, files, filepath.Join("/home/u/.karate", LicenseFileName))
	assert.Contains(t, files, filepath.Join("/home/u/.karate", ThirdPartyLicenseFileName))
}
