// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karatelabs.io/x/launcher/pkg/launchererrors"
)

func TestDetectCanonicalKeys(t *testing.T) {
	cases := map[[2]string]string{
		{"darwin", "amd64"}:  "macos-x64",
		{"darwin", "arm64"}:  "macos-aarch64",
		{"linux", "amd64"}:   "linux-x64",
		{"linux", "arm64"}:   "linux-aarch64",
		{"windows", "amd64"}: "windows-x64",
	}

	for pair, key := range cases {
		p, err := detect(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, key, p.Key())
	}
}

func TestDetectUnsupported(t *testing.T) {
	for _, pair := range [][2]string{
		{"plan9", "amd64"},
		{"windows", "arm64"},
		{"linux", "386"},
	} {
		_, err := detect(pair[0], pair[1])
		require.Error(t, err)
		assert.Equal(t, launchererrors.PlatformUnsupported, launchererrors.Standardize(err).Code)
	}
}

func TestJavaExecutable(t *testing.T) {
	windows, err := detect("windows", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "java.exe", windows.JavaExecutable())

	linux, err := detect("linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "java", linux.JavaExecutable())
}

func TestRuntimeDirName(t *testing.T) {
	p, err := detect("darwin", "arm64")
	require.NoError(t, err)
	assert.Equal(t, "21.0.9-macos-aarch64", p.RuntimeDirName("21.0.9"))
}
