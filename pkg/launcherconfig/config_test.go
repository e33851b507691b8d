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

func TestDefaultConfig(t *testing.T) {
	config := Default()
	assert.Equal(t, "stable", config.Channel)
	assert.Equal(t, LatestVersion, config.Version)
	assert.False(t, config.IsPinned())
	assert.True(t, config.CheckUpdatesEnabled())
}

func TestMergeSetFieldsWin(t *testing.T) {
	base := Default()
	off := false
	base.Merge(&Config{
		Version:      "1.5.2",
		JvmOptions:   "-Xmx2g",
		CheckUpdates: &off,
	})

	assert.Equal(t, "stable", base.Channel)
	assert.Equal(t, "1.5.2", base.Version)
	assert.Equal(t, "-Xmx2g", base.JvmOptions)
	assert.False(t, base.CheckUpdatesEnabled())
	assert.True(t, base.IsPinned())

	// An empty layer changes nothing.
	base.Merge(&Config{})
	assert.Equal(t, "1.5.2", base.Version)
	assert.False(t, base.CheckUpdatesEnabled())
}

func writeConfigs(t *testing.T, paths *Paths, global, project string) {
	t.Helper()
	if global != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(paths.GlobalConfigPath()), 0755))
		require.NoError(t, os.WriteFile(paths.GlobalConfigPath(), []byte(global), 0644))
	}
	if project != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(paths.ProjectConfigPath()), 0755))
		require.NoError(t, os.WriteFile(paths.ProjectConfigPath(), []byte(project), 0644))
	}
}

func TestLoadMergedLayering(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), t.TempDir())
	writeConfigs(t, paths,
		"channel: beta\njvm-options: -Xmx1g\n",
		"version: 1.5.2\njvm-options: -Xmx4g\n")

	config, err := LoadMerged(paths)
	require.NoError(t, err)

	assert.Equal(t, "beta", config.Channel)
	assert.Equal(t, "1.5.2", config.Version)
	// Project layer wins over global.
	assert.Equal(t, "-Xmx4g", config.JvmOptions)
}

func TestLoadMergedEnvOverrides(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), t.TempDir())
	writeConfigs(t, paths, "channel: beta\n", "")

	t.Setenv(ChannelEnvVar, "nightly")
	t.Setenv(VersionEnvVar, "1.9.0")
	t.Setenv(CheckUpdatesEnvVar, "false")

	config, err := LoadMerged(paths)
	require.NoError(t, err)

	assert.Equal(t, "nightly", config.Channel)
	assert.Equal(t, "1.9.0", config.Version)
	assert.False(t, config.CheckUpdatesEnabled())
}

func TestLoadMergedAnchorsRelativeOverridePaths(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), t.TempDir())
	writeConfigs(t, paths, "", "jre-path: vendor/jre\ndist-path: /opt/karate/dist\n")

	config, err := LoadMerged(paths)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.Cwd, "vendor", "jre"), config.JrePath)
	// Absolute paths pass through untouched.
	assert.Equal(t, filepath.Clean("/opt/karate/dist"), config.DistPath)
}

func TestLoadMergedInvalidCheckUpdatesEnvVar(t *testing.T) {
	paths := NewPathsAt(t.TempDir(), t.TempDir())
	t.Setenv(CheckUpdatesEnvVar, "maybe")

	_, err := LoadMerged(paths)
	require.Error(t, err)
}

func TestLoadFileMissingIsEmptyLayer(t *testing.T) {
	config, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, config)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karate-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: [unclosed"), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
}
