// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
)

func writeJar(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("jar"), 0644))
	return path
}

func TestBuildClasspathShadowing(t *testing.T) {
	localExt := t.TempDir()
	globalExt := t.TempDir()
	jarPath := writeJar(t, t.TempDir(), "karate-1.5.2-all.jar")

	writeJar(t, localExt, "driver.jar")
	writeJar(t, localExt, "local-only.jar")
	writeJar(t, globalExt, "driver.jar") // shadowed by the local one
	writeJar(t, globalExt, "global-only.jar")

	cp := BuildClasspath(jarPath, []string{localExt, globalExt})
	parts := strings.Split(cp, string(os.PathListSeparator))

	assert.Equal(t, []string{
		jarPath,
		filepath.Join(localExt, "driver.jar"),
		filepath.Join(localExt, "local-only.jar"),
		filepath.Join(globalExt, "global-only.jar"),
	}, parts)
}

func TestBuildClasspathIgnoresNonJars(t *testing.T) {
	ext := t.TempDir()
	jarPath := writeJar(t, t.TempDir(), "karate-1.5.2-all.jar")

	writeJar(t, ext, "helper.jar")
	require.NoError(t, os.WriteFile(filepath.Join(ext, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(ext, "nested.jar"), 0755)) // dir, not a jar

	cp := BuildClasspath(jarPath, []string{ext})
	assert.Equal(t, jarPath+string(os.PathListSeparator)+filepath.Join(ext, "helper.jar"), cp)
}

func TestBuildClasspathMissingExtDirs(t *testing.T) {
	jarPath := writeJar(t, t.TempDir(), "karate-1.5.2-all.jar")
	cp := BuildClasspath(jarPath, []string{"/does/not/exist"})
	assert.Equal(t, jarPath, cp)
}

func newLauncher(t *testing.T) (*Launcher, string) {
	t.Helper()
	paths := launcherconfig.NewPathsAt(t.TempDir(), t.TempDir())
	l := &Launcher{
		Paths:  paths,
		Config: launcherconfig.Default(),
	}
	distRoot, _ := paths.ResolveRoot(launcherconfig.Archive)
	return l, distRoot
}

func TestResolveJarPrefersPinnedWhenPresent(t *testing.T) {
	l, distRoot := newLauncher(t)
	writeJar(t, distRoot, "karate-1.4.0-all.jar")
	pinned := writeJar(t, distRoot, "karate-1.5.2-all.jar")
	l.Config.Version = "1.5.2"

	got, err := l.resolveJar()
	require.NoError(t, err)
	assert.Equal(t, pinned, got)
}

func TestResolveJarFallsBackToNewest(t *testing.T) {
	l, distRoot := newLauncher(t)
	writeJar(t, distRoot, "karate-1.4.0-all.jar")
	newest := writeJar(t, distRoot, "karate-1.5.2-all.jar")

	got, err := l.resolveJar()
	require.NoError(t, err)
	assert.Equal(t, newest, got)
}

func TestResolveJarDistPathOverride(t *testing.T) {
	l, _ := newLauncher(t)
	custom := t.TempDir()
	jar := writeJar(t, custom, "karate-0.0.0-all.jar")
	l.Config.DistPath = custom

	got, err := l.resolveJar()
	require.NoError(t, err)
	assert.Equal(t, jar, got)
}

func TestResolveJarNothingInstalled(t *testing.T) {
	l, _ := newLauncher(t)

	_, err := l.resolveJar()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "karate setup")
}

func TestTouchUpdateCheckRespectsOptOut(t *testing.T) {
	l, _ := newLauncher(t)
	off := false
	l.Config.CheckUpdates = &off

	l.touchUpdateCheck()
	assert.NoFileExists(t, l.Paths.LastUpdateCheckPath())
}

func TestTouchUpdateCheckStamps(t *testing.T) {
	l, _ := newLauncher(t)

	l.touchUpdateCheck()
	assert.FileExists(t, l.Paths.LastUpdateCheckPath())
}
