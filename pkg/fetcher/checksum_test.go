// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecksumSidecarBareDigest(t *testing.T) {
	digest := strings.Repeat("AB", 32)
	got, err := ParseChecksumSidecar([]byte("  "+digest+"\n"), "any.jar")
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(digest), got)
}

func TestParseChecksumSidecarSha256sumLines(t *testing.T) {
	a := strings.Repeat("aa", 32)
	b := strings.Repeat("bb", 32)
	sidecar := "# released 2026-08-01\n" +
		a + "  karate-1.5.2-all.jar\n" +
		"\n" +
		b + "  dist/other.jar\n"

	got, err := ParseChecksumSidecar([]byte(sidecar), "karate-1.5.2-all.jar")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	// Paths in the sidecar match on base name.
	got, err = ParseChecksumSidecar([]byte(sidecar), "other.jar")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = ParseChecksumSidecar([]byte(sidecar), "missing.jar")
	assert.Error(t, err)
}

func TestParseChecksumSidecarEmpty(t *testing.T) {
	_, err := ParseChecksumSidecar([]byte("   \n"), "a.jar")
	assert.Error(t, err)
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	digest, err := FileSHA256(path)
	require.NoError(t, err)
	// sha256 of "payload".
	assert.Equal(t, "239f59ed55e737c77147cf55ad0c1b030b6d7ee748a7426952f9b852d5a935e5", digest)

	_, err = FileSHA256(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}
