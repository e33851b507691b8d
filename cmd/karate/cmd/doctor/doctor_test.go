// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karatelabs.io/x/launcher/pkg/archive"
	"karatelabs.io/x/launcher/pkg/fetcher"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
)

func TestDoctorJSONReportsActiveArchiveDigest(t *testing.T) {
	t.Setenv("JAVA_HOME", "")
	home := t.TempDir()
	paths := launcherconfig.NewPathsAt(t.TempDir(), home)

	distRoot := filepath.Join(home, "dist")
	require.NoError(t, os.MkdirAll(distRoot, 0755))
	jarPath := archive.JarPath(distRoot, "1.5.2")
	require.NoError(t, os.WriteFile(jarPath, []byte("jar-bytes"), 0644))
	wantDigest, err := fetcher.FileSHA256(jarPath)
	require.NoError(t, err)

	cmd := Cmd(paths, &launcherconfig.Config{Channel: "stable", Version: "latest"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())

	var r report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, "1.5.2", r.ActiveArchive)
	assert.Equal(t, wantDigest, r.ActiveSHA256)
	assert.Equal(t, []string{"1.5.2"}, r.Archives)
}

func TestDoctorJSONOmitsDigestWithoutArchives(t *testing.T) {
	t.Setenv("JAVA_HOME", "")
	paths := launcherconfig.NewPathsAt(t.TempDir(), t.TempDir())

	cmd := Cmd(paths, &launcherconfig.Config{Channel: "stable", Version: "latest"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())

	var r report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Empty(t, r.ActiveArchive)
	assert.Empty(t, r.ActiveSHA256)
}
