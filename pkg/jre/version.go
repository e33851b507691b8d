// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jre

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinJavaMajorVersion is the oldest Java the application archive runs on.
const MinJavaMajorVersion = 21

// ExtractVersionString pulls the quoted version out of the first line of
// `java -version` output, e.g.
//
//	openjdk version "21.0.1" 2023-10-17
//	java version "1.8.0_301"
func ExtractVersionString(line string) (string, error) {
	start := strings.Index(line, `"`)
	if start < 0 {
		return "", fmt.Errorf("no version string in %q", line)
	}
	rest := line[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", fmt.Errorf("no version string in %q", line)
	}
	return rest[:end], nil
}

// MajorVersion parses the major version out of a Java version string.
// The legacy 1.x scheme maps to x, so "1.8.0_301" is major 8.
func MajorVersion(version string) (int, error) {
	parts := strings.Split(version, ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid java version %q", version)
	}
	if major != 1 {
		return major, nil
	}
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid legacy java version %q", version)
	}
	minor, _, _ := strings.Cut(parts[1], "_")
	legacy, err := strconv.Atoi(minor)
	if err != nil {
		return 0, fmt.Errorf("invalid legacy java version %q", version)
	}
	return legacy, nil
}

// versionLess orders runtime version strings newest first. Managed runtime
// versions are semver-shaped; anything unparseable sorts last.
func versionLess(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return a > b
	}
	return va.GreaterThan(vb)
}

func sortRuntimesDesc(runtimes []Runtime) {
	sort.SliceStable(runtimes, func(i, j int) bool {
		return versionLess(runtimes[i].Version, runtimes[j].Version)
	})
}
