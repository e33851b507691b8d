// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package archive manages the versioned application jar under the dist
// resource category.
package archive

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	jarPrefix = "karate-"
	jarSuffix = ".jar"
)

// JarName is the canonical filename for an archive version, matching the
// published release asset naming.
func JarName(version string) string {
	return jarPrefix + version + "-all" + jarSuffix
}

// JarPath is where an archive version lives under the dist root.
func JarPath(distRoot, version string) string {
	return filepath.Join(distRoot, JarName(version))
}

// IsArchiveJar reports whether a filename is a managed application jar.
// Auxiliary jars (e.g. robot variants) are excluded.
func IsArchiveJar(name string) bool {
	return strings.HasPrefix(name, jarPrefix) &&
		strings.HasSuffix(name, jarSuffix) &&
		!strings.Contains(name, "robot")
}

// VersionFromJarName extracts the version encoded in a jar filename, or ""
// when the name is not a managed jar.
func VersionFromJarName(name string) string {
	if !IsArchiveJar(name) {
		return ""
	}
	v := strings.TrimPrefix(name, jarPrefix)
	v = strings.TrimSuffix(v, jarSuffix)
	return strings.TrimSuffix(v, "-all")
}

// InstalledVersions lists the archive versions present under distRoot.
// A missing root is an empty result, not an error.
func InstalledVersions(distRoot string) ([]string, error) {
	entries, err := os.ReadDir(distRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	versions := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		v := VersionFromJarName(e.Name())
		return v, v != ""
	})
	sort.Strings(versions)
	return versions, nil
}

// Installed reports whether a specific archive version is present.
func Installed(distRoot, version string) bool {
	_, err := os.Stat(JarPath(distRoot, version))
	return err == nil
}

// NewestJar returns the managed jar in dir with the lexically greatest name,
// for delegation when the configured version is not pinned to a file. An
// explicitly configured dist dir may hold arbitrarily named karate jars.
func NewestJar(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var jars []string
	for _, e := range entries {
		if !e.IsDir() && IsArchiveJar(e.Name()) {
			jars = append(jars, e.Name())
		}
	}
	if len(jars) == 0 {
		return "", false
	}
	sort.Strings(jars)
	return filepath.Join(dir, jars[len(jars)-1]), true
}

// ActiveVersion is the most recently modified installed version. Display
// only; resolution never derives targets from it.
func ActiveVersion(distRoot string) (string, bool) {
	entries, err := os.ReadDir(distRoot)
	if err != nil {
		return "", false
	}

	var active string
	var activeTime time.Time
	for _, e := range entries {
		v := VersionFromJarName(e.Name())
		if v == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if active == "" || info.ModTime().After(activeTime) {
			active = v
			activeTime = info.ModTime()
		}
	}
	return active, active != ""
}
