// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"runtime"

	"karatelabs.io/x/launcher/pkg/launchererrors"
)

// Platform identifies the running operating system and CPU architecture
// in the canonical form used as a lookup key into manifest platform tables.
type Platform struct {
	OS   string
	Arch string
}

// canonicalKeys enumerates every supported (GOOS, GOARCH) pair. Pairs not
// listed here are a hard error, never coerced.
var canonicalKeys = map[[2]string]Platform{
	{"darwin", "amd64"}:  {OS: "macos", Arch: "x64"},
	{"darwin", "arm64"}:  {OS: "macos", Arch: "aarch64"},
	{"linux", "amd64"}:   {OS: "linux", Arch: "x64"},
	{"linux", "arm64"}:   {OS: "linux", Arch: "aarch64"},
	{"windows", "amd64"}: {OS: "windows", Arch: "x64"},
}

// Detect resolves the current platform. Pure, no I/O.
func Detect() (*Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (*Platform, error) {
	p, ok := canonicalKeys[[2]string{goos, goarch}]
	if !ok {
		return nil, launchererrors.NewPlatformUnsupportedError(
			fmt.Errorf("unsupported platform: %s-%s", goos, goarch))
	}
	return &p, nil
}

// Key returns the canonical manifest key, e.g. "macos-aarch64".
func (p *Platform) Key() string {
	return fmt.Sprintf("%s-%s", p.OS, p.Arch)
}

func (p *Platform) String() string {
	return p.Key()
}

// JavaExecutable returns the name of the java binary on this platform.
func (p *Platform) JavaExecutable() string {
	if p.OS == "windows" {
		return "java.exe"
	}
	return "java"
}

// RuntimeDirName returns the directory name a managed runtime of the given
// version is installed under, e.g. "21.0.9-macos-aarch64".
func (p *Platform) RuntimeDirName(version string) string {
	return fmt.Sprintf("%s-%s", version, p.Key())
}
