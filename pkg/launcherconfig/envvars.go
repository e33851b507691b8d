// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherconfig

const envVarPrefix = "KARATE_"

const (
	// HomeEnvVar
	// KARATE_HOME is the absolute path to the launcher home directory
	HomeEnvVar = envVarPrefix + "HOME"

	// LogLevelEnvVar
	// KARATE_LOG_LEVEL sets the log level for the launcher.
	// 	Default: info
	//  Possible values: info error warn debug
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// ChannelEnvVar
	// KARATE_CHANNEL overrides the release channel from any config file
	ChannelEnvVar = envVarPrefix + "CHANNEL"

	// VersionEnvVar
	// KARATE_VERSION overrides the archive version being used.
	// It's a global override that wins over any config file.
	VersionEnvVar = envVarPrefix + "VERSION"

	// ManifestURLEnvVar
	// KARATE_MANIFEST_URL overrides the URL the version manifest is fetched from
	// (e.g. for air-gapped mirrors)
	ManifestURLEnvVar = envVarPrefix + "MANIFEST_URL"

	// CheckUpdatesEnvVar
	// KARATE_CHECK_UPDATES disables the passive update check performed on
	// delegated runs when set to false
	CheckUpdatesEnvVar = envVarPrefix + "CHECK_UPDATES"
)
