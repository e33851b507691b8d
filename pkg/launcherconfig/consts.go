// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherconfig

const (
	// ProjectMarkerDirName is the per-project override directory checked in
	// the working directory. A category subdirectory inside it overrides the
	// global home for that category only.
	ProjectMarkerDirName = ".karate"

	GlobalConfigFileName  = "karate-config.yaml"
	ProjectConfigFileName = "karate.yaml"

	CacheDirName            = "cache"
	ManifestCacheFileName   = "manifest.json"
	LastUpdateCheckFileName = "last-update-check"

	// License files living directly under the home directory. No operation
	// performed by the launcher may delete or rewrite these.
	LicenseFileName           = "karate.lic"
	ThirdPartyLicenseFileName = "LICENSE-3RD-PARTY.txt"

	LauncherUserAgentPrefix = "karate-launcher"

	DefaultChannel = "stable"
	LatestVersion  = "latest"
)
