// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherversion

import "karatelabs.io/x/launcher/pkg/launcherconfig"

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'karatelabs.io/x/launcher/pkg/launcherversion.LauncherVersion=1.2.3'"
var (
	LauncherVersion string
	Build           string
	BuildDate       string
)

type VersionInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	BuildDate string `json:"buildDate"`
}

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() VersionInfo {
	return VersionInfo{
		Version:   defaultUnknown(LauncherVersion),
		Build:     defaultUnknown(Build),
		BuildDate: defaultUnknown(BuildDate),
	}
}

func GetLauncherVersion() string {
	return defaultUnknown(LauncherVersion)
}

func GetBuild() string {
	return defaultUnknown(Build)
}

func GetBuildDate() string {
	return defaultUnknown(BuildDate)
}

// UserAgent identifies the launcher on outbound HTTP requests.
func UserAgent() string {
	return launcherconfig.LauncherUserAgentPrefix + "/" + defaultUnknown(LauncherVersion)
}
