// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"karatelabs.io/x/launcher/pkg/launchererrors"
)

var ErrManifestCorrupt = fmt.Errorf("corrupt manifest")
var ErrUnknownArtifact = fmt.Errorf("unknown artifact")
var ErrNoPlatformArtifact = fmt.Errorf("no artifact published for platform")

// Artifact names used throughout the launcher. The manifest may carry more,
// which are ignored.
const (
	ArchiveArtifact = "archive"
	RuntimeArtifact = "runtime"
)

// Download is a fetchable artifact location with its expected digest.
type Download struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256,omitempty"`
}

// VersionEntry describes one published version of an artifact. Platform-independent
// artifacts carry URL/SHA256 inline; platform-specific ones carry a Platforms table.
type VersionEntry struct {
	Channels   []string            `json:"channels,omitempty"`
	ReleasedAt string              `json:"released_at,omitempty"`
	URL        string              `json:"url,omitempty"`
	SHA256     string              `json:"sha256,omitempty"`
	Platforms  map[string]Download `json:"platforms,omitempty"`
}

type ArtifactEntry struct {
	Versions map[string]VersionEntry `json:"versions"`
}

// Manifest is the remote version document. Version strings inside it are
// opaque identifiers; the launcher never orders them.
type Manifest struct {
	SchemaVersion   int                          `json:"schema_version"`
	GeneratedAt     string                       `json:"generated_at,omitempty"`
	Artifacts       map[string]ArtifactEntry     `json:"artifacts"`
	ChannelDefaults map[string]map[string]string `json:"channel_defaults,omitempty"`
}

// Parse decodes and fully validates a manifest document. Any schema or
// cross-reference violation yields ErrManifestCorrupt wrapped in a
// MANIFEST_CORRUPT coded error.
func Parse(contents []byte) (*Manifest, error) {
	if err := ValidateSchema(contents); err != nil {
		return nil, launchererrors.NewManifestCorruptError(
			fmt.Errorf("%w: %s", ErrManifestCorrupt, err.Error()))
	}

	var m Manifest
	if err := json.Unmarshal(contents, &m); err != nil {
		return nil, launchererrors.NewManifestCorruptError(
			fmt.Errorf("%w: %s", ErrManifestCorrupt, err.Error()))
	}

	if err := m.Validate(); err != nil {
		return nil, launchererrors.NewManifestCorruptError(err)
	}
	return &m, nil
}

// Validate enforces the cross-reference invariant: every version named by
// channel_defaults must exist under the corresponding artifact's versions.
func (m *Manifest) Validate() error {
	for channel, defaults := range m.ChannelDefaults {
		for artifact, version := range defaults {
			entry, found := m.Artifacts[artifact]
			if !found {
				return fmt.Errorf("%w: channel %q defaults to unknown artifact %q",
					ErrManifestCorrupt, channel, artifact)
			}
			if _, found := entry.Versions[version]; !found {
				return fmt.Errorf("%w: channel %q defaults %q to unpublished version %q",
					ErrManifestCorrupt, channel, artifact, version)
			}
		}
	}
	return nil
}

// ChannelDefault returns the version a channel publishes for an artifact,
// or false when the channel has no entry for it.
func (m *Manifest) ChannelDefault(channel, artifact string) (string, bool) {
	defaults, found := m.ChannelDefaults[channel]
	if !found {
		return "", false
	}
	version, found := defaults[artifact]
	return version, found
}

// Version returns the entry for an artifact version, or false when the
// artifact or version is not published.
func (m *Manifest) Version(artifact, version string) (*VersionEntry, bool) {
	entry, found := m.Artifacts[artifact]
	if !found {
		return nil, false
	}
	v, found := entry.Versions[version]
	if !found {
		return nil, false
	}
	return &v, true
}

// Versions lists the published version strings of an artifact, in no
// particular order.
func (m *Manifest) Versions(artifact string) []string {
	entry, found := m.Artifacts[artifact]
	if !found {
		return nil
	}
	return lo.Keys(entry.Versions)
}

// ResolveDownload returns the download location for an artifact version on
// the given platform. Platform-independent entries ignore platformKey.
func (m *Manifest) ResolveDownload(artifact, version, platformKey string) (*Download, error) {
	v, found := m.Version(artifact, version)
	if !found {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownArtifact, artifact, version)
	}

	if len(v.Platforms) > 0 {
		d, found := v.Platforms[platformKey]
		if !found {
			return nil, fmt.Errorf("%w: %s %s on %s", ErrNoPlatformArtifact, artifact, version, platformKey)
		}
		return &d, nil
	}

	if v.URL == "" {
		return nil, fmt.Errorf("%w: %s %s has no download url", ErrManifestCorrupt, artifact, version)
	}
	return &Download{URL: v.URL, SHA256: v.SHA256}, nil
}
