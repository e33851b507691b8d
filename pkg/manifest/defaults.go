// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"strings"
)

// Convention defaults, used only when no manifest is reachable and no cache
// exists. They are kept entirely separate from the manifest-driven path.
const (
	// DefaultManifestURL is where the launcher looks for the version
	// manifest unless overridden.
	DefaultManifestURL = "https://github.com/karatelabs/karate-cli-manifest/releases/latest/download/manifest.json"

	archiveURLTemplate = "https://github.com/karatelabs/karate/releases/download/v{version}/karate-{version}-all.jar"

	runtimeURLTemplate = "https://download.eclipse.org/justj/jres/{major}/downloads/latest/org.eclipse.justj.openjdk.hotspot.jre.full.stripped-{version}-{platform}.tar.gz"

	// DefaultArchiveVersion is the archive the builtin manifest publishes
	// on the stable channel.
	DefaultArchiveVersion = "1.5.2"

	// DefaultRuntimeVersion is the runtime the builtin manifest publishes
	// on the stable channel.
	DefaultRuntimeVersion = "21.0.9"
)

// justjPlatforms maps launcher platform keys to the platform suffixes used
// by the JustJ JRE distribution.
var justjPlatforms = map[string]string{
	"macos-aarch64": "macosx-aarch64",
	"macos-x64":     "macosx-x86_64",
	"linux-x64":     "linux-x86_64",
	"linux-aarch64": "linux-aarch64",
	"windows-x64":   "win32-x86_64",
}

// ConventionURL builds a download URL for an artifact version from the
// builtin templates. It is a pure function; no manifest state is consulted.
func ConventionURL(artifact, version, platformKey string) (string, error) {
	switch artifact {
	case ArchiveArtifact:
		return strings.ReplaceAll(archiveURLTemplate, "{version}", version), nil
	case RuntimeArtifact:
		justj, found := justjPlatforms[platformKey]
		if !found {
			return "", fmt.Errorf("%w: %s %s on %s", ErrNoPlatformArtifact, artifact, version, platformKey)
		}
		major, _, _ := strings.Cut(version, ".")
		r := strings.NewReplacer("{major}", major, "{version}", version, "{platform}", justj)
		return r.Replace(runtimeURLTemplate), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownArtifact, artifact)
	}
}

// Builtin returns the convention-based manifest used when neither the remote
// manifest nor a cached copy is available. Download URLs are template
// expansions and carry no checksums, so verification is skipped for them.
func Builtin() *Manifest {
	archiveURL, _ := ConventionURL(ArchiveArtifact, DefaultArchiveVersion, "")

	runtimePlatforms := make(map[string]Download, len(justjPlatforms))
	for key := range justjPlatforms {
		url, _ := ConventionURL(RuntimeArtifact, DefaultRuntimeVersion, key)
		runtimePlatforms[key] = Download{URL: url}
	}

	return &Manifest{
		SchemaVersion: 1,
		Artifacts: map[string]ArtifactEntry{
			ArchiveArtifact: {Versions: map[string]VersionEntry{
				DefaultArchiveVersion: {
					Channels: []string{"stable"},
					URL:      archiveURL,
				},
			}},
			RuntimeArtifact: {Versions: map[string]VersionEntry{
				DefaultRuntimeVersion: {
					Channels:  []string{"stable"},
					Platforms: runtimePlatforms,
				},
			}},
		},
		ChannelDefaults: map[string]map[string]string{
			"stable": {
				ArchiveArtifact: DefaultArchiveVersion,
				RuntimeArtifact: DefaultRuntimeVersion,
			},
		},
	}
}
