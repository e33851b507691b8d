// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package jre locates a qualifying Java runtime. It never downloads one;
// when nothing qualifies it reports that, and the update orchestrator is
// responsible for installing a managed runtime.
package jre

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/platform"
)

// Source records where a runtime was found, for diagnostics.
type Source string

const (
	SourceManaged    Source = "managed"
	SourceConfigured Source = "configured"
	SourceJavaHome   Source = "JAVA_HOME"
	SourcePath       Source = "PATH"
)

// Runtime is a located Java installation.
type Runtime struct {
	Version        string
	MajorVersion   int
	Platform       string
	Path           string
	JavaExecutable string
	Source         Source
}

func (r *Runtime) MeetsMinimum() bool {
	return r.MajorVersion >= MinJavaMajorVersion
}

// Manager resolves runtimes for one invocation. Probe and LookPath are
// injectable for tests; both default to the real thing.
type Manager struct {
	Paths    *launcherconfig.Paths
	Config   *launcherconfig.Config
	Platform *platform.Platform

	// Probe runs `java -version` and returns the first output line.
	Probe func(javaExecutable string) (string, error)
	// LookPath finds an executable on PATH.
	LookPath func(file string) (string, error)
}

func NewManager(paths *launcherconfig.Paths, config *launcherconfig.Config, p *platform.Platform) *Manager {
	return &Manager{
		Paths:    paths,
		Config:   config,
		Platform: p,
		Probe:    probeJavaVersion,
		LookPath: exec.LookPath,
	}
}

// Resolve finds the runtime to launch with. Search order: managed runtimes
// (local root wins over global), explicit configured path, JAVA_HOME, then
// PATH. System runtimes must meet the minimum major version; a configured
// path is the user's own decision and is not version re-validated, and once
// set it shuts out JAVA_HOME and PATH discovery entirely.
func (m *Manager) Resolve() (*Runtime, error) {
	installed, err := m.Installed()
	if err != nil {
		return nil, err
	}
	for _, r := range installed {
		if r.Platform == m.Platform.Key() && r.MeetsMinimum() {
			return &r, nil
		}
	}

	if m.Config != nil && m.Config.JrePath != "" {
		return m.configuredRuntime(m.Config.JrePath)
	}

	if r := m.javaHomeRuntime(); r != nil && r.MeetsMinimum() {
		return r, nil
	}
	if r := m.pathRuntime(); r != nil && r.MeetsMinimum() {
		return r, nil
	}

	return nil, launchererrors.NewRuntimeUnavailableError(
		fmt.Errorf("no java %d+ runtime found; run 'karate setup' to install one", MinJavaMajorVersion))
}

func (m *Manager) configuredRuntime(dir string) (*Runtime, error) {
	javaExecutable, err := FindJavaExecutable(dir, m.Platform)
	if err != nil {
		return nil, launchererrors.NewConfigurationError(
			fmt.Errorf("configured jre-path %q has no java executable: %w", dir, err))
	}
	return &Runtime{
		Version:        "configured",
		MajorVersion:   MinJavaMajorVersion,
		Platform:       m.Platform.Key(),
		Path:           dir,
		JavaExecutable: javaExecutable,
		Source:         SourceConfigured,
	}, nil
}

// Installed enumerates managed runtimes under the resolved runtime root,
// newest version first. A missing root is an empty result.
func (m *Manager) Installed() ([]Runtime, error) {
	root, _ := m.Paths.ResolveRoot(launcherconfig.Runtime)
	return m.installedAt(root)
}

func (m *Manager) installedAt(root string) ([]Runtime, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runtimes []Runtime
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		version, platformKey, ok := parseRuntimeDirName(e.Name())
		if !ok {
			continue
		}
		dir := filepath.Join(root, e.Name())
		javaExecutable, err := FindJavaExecutable(dir, m.Platform)
		if err != nil {
			slog.Debug("runtime dir has no java executable", "dir", dir)
			continue
		}
		major, err := MajorVersion(version)
		if err != nil {
			continue
		}
		runtimes = append(runtimes, Runtime{
			Version:        version,
			MajorVersion:   major,
			Platform:       platformKey,
			Path:           dir,
			JavaExecutable: javaExecutable,
			Source:         SourceManaged,
		})
	}

	sortRuntimesDesc(runtimes)
	return runtimes, nil
}

// InstalledVersions lists managed runtime versions for the current platform,
// newest first.
func (m *Manager) InstalledVersions() ([]string, error) {
	installed, err := m.Installed()
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, r := range installed {
		if r.Platform == m.Platform.Key() {
			versions = append(versions, r.Version)
		}
	}
	return versions, nil
}

func (m *Manager) javaHomeRuntime() *Runtime {
	javaHome, ok := os.LookupEnv("JAVA_HOME")
	if !ok || javaHome == "" {
		return nil
	}
	javaExecutable := filepath.Join(javaHome, "bin", m.Platform.JavaExecutable())
	if _, err := os.Stat(javaExecutable); err != nil {
		return nil
	}
	return m.probedRuntime(javaHome, javaExecutable, SourceJavaHome)
}

func (m *Manager) pathRuntime() *Runtime {
	javaExecutable, err := m.LookPath(m.Platform.JavaExecutable())
	if err != nil {
		return nil
	}
	// JAVA_HOME is conventionally one level above bin/.
	home := filepath.Dir(filepath.Dir(javaExecutable))
	return m.probedRuntime(home, javaExecutable, SourcePath)
}

func (m *Manager) probedRuntime(home, javaExecutable string, source Source) *Runtime {
	line, err := m.Probe(javaExecutable)
	if err != nil {
		slog.Debug("java -version probe failed", "java", javaExecutable, "error", err)
		return nil
	}
	version, err := ExtractVersionString(line)
	if err != nil {
		return nil
	}
	major, err := MajorVersion(version)
	if err != nil {
		return nil
	}
	return &Runtime{
		Version:        version,
		MajorVersion:   major,
		Platform:       m.Platform.Key(),
		Path:           home,
		JavaExecutable: javaExecutable,
		Source:         source,
	}
}

// Candidate is one entry of the Doctor report.
type Candidate struct {
	Source   Source `json:"source"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Major    int    `json:"major,omitempty"`
	Eligible bool   `json:"eligible"`
	Selected bool   `json:"selected"`
	Detail   string `json:"detail,omitempty"`
}

// Doctor reports every runtime candidate in search order, read-only. The
// first eligible candidate carries the selection marker.
func (m *Manager) Doctor() []Candidate {
	var candidates []Candidate
	selected := false
	mark := func(c Candidate) {
		if c.Eligible && !selected {
			c.Selected = true
			selected = true
		}
		candidates = append(candidates, c)
	}

	installed, err := m.Installed()
	if err != nil {
		mark(Candidate{Source: SourceManaged, Detail: err.Error()})
	}
	for _, r := range installed {
		mark(Candidate{
			Source:   SourceManaged,
			Path:     r.Path,
			Version:  r.Version,
			Major:    r.MajorVersion,
			Eligible: r.Platform == m.Platform.Key() && r.MeetsMinimum(),
		})
	}

	if m.Config != nil && m.Config.JrePath != "" {
		c := Candidate{Source: SourceConfigured, Path: m.Config.JrePath}
		if _, err := FindJavaExecutable(m.Config.JrePath, m.Platform); err != nil {
			c.Detail = "no java executable found"
		} else {
			c.Eligible = true
		}
		mark(c)
	}

	if r := m.javaHomeRuntime(); r != nil {
		mark(Candidate{
			Source: SourceJavaHome, Path: r.Path, Version: r.Version,
			Major: r.MajorVersion, Eligible: r.MeetsMinimum(),
		})
	} else if home, ok := os.LookupEnv("JAVA_HOME"); ok && home != "" {
		mark(Candidate{Source: SourceJavaHome, Path: home, Detail: "no working java executable"})
	}

	if r := m.pathRuntime(); r != nil {
		mark(Candidate{
			Source: SourcePath, Path: r.JavaExecutable, Version: r.Version,
			Major: r.MajorVersion, Eligible: r.MeetsMinimum(),
		})
	}

	return candidates
}

// FindJavaExecutable locates the java binary inside a runtime directory,
// trying the known layouts before a bounded recursive search.
func FindJavaExecutable(dir string, p *platform.Platform) (string, error) {
	javaName := p.JavaExecutable()
	candidates := []string{
		filepath.Join(dir, "bin", javaName),
		filepath.Join(dir, "Contents", "Home", "bin", javaName),
		filepath.Join(dir, "jre", "bin", javaName),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	if found := searchExecutable(dir, javaName, 0); found != "" {
		return found, nil
	}
	return "", fmt.Errorf("no %s under %q", javaName, dir)
}

const maxSearchDepth = 5

func searchExecutable(dir, target string, depth int) string {
	if depth > maxSearchDepth {
		return ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if found := searchExecutable(path, target, depth+1); found != "" {
				return found
			}
		} else if e.Name() == target {
			return path
		}
	}
	return ""
}

// parseRuntimeDirName splits a managed runtime dir name into version and
// platform key, e.g. "21.0.9-linux-x64".
func parseRuntimeDirName(name string) (version, platformKey string, ok bool) {
	version, platformKey, found := strings.Cut(name, "-")
	if !found || version == "" || platformKey == "" {
		return "", "", false
	}
	return version, platformKey, true
}

// probeJavaVersion runs `java -version` and returns the first line. Java
// prints its version banner to stderr.
func probeJavaVersion(javaExecutable string) (string, error) {
	out, err := exec.Command(javaExecutable, "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run %q -version: %w", javaExecutable, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return line, nil
}
