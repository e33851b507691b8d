// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package versionresolve computes, per artifact, the target version and
// whether an install or update action is required. Version strings are
// opaque identifiers compared only for equality; "newer" is whatever the
// manifest labels as the channel default.
package versionresolve

import (
	"fmt"

	"github.com/samber/lo"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/manifest"
)

var ErrUnknownVersion = fmt.Errorf("version not published in manifest")
var ErrNoChannelDefault = fmt.Errorf("channel has no published version for artifact")

// State is the outcome of comparing the target against installed versions.
type State string

const (
	UpToDate    State = "up-to-date"
	NeedsAction State = "needs-action"
)

// Request describes one artifact resolution.
type Request struct {
	Artifact string
	// Channel is consulted only when Version is "latest".
	Channel string
	// Version is a concrete version string or "latest".
	Version string
	// OverridePath, when set, skips manifest existence checks entirely:
	// the user supplies the artifact out of band.
	OverridePath string
}

// Resolution is the computed target for one artifact.
type Resolution struct {
	Artifact string `json:"artifact"`
	Target   string `json:"target"`
	State    State  `json:"state"`
	Pinned   bool   `json:"pinned"`
	Channel  string `json:"channel,omitempty"`
}

// Resolve computes the target version for a request against the manifest
// and the locally installed set. It never derives the target from what is
// installed; installed versions only decide up-to-date versus needs-action.
func Resolve(req Request, m *manifest.Manifest, installed []string) (*Resolution, error) {
	res := &Resolution{
		Artifact: req.Artifact,
		Pinned:   req.Version != launcherconfig.LatestVersion,
		Channel:  req.Channel,
	}

	if res.Pinned {
		res.Target = req.Version
		if req.OverridePath == "" {
			if _, found := m.Version(req.Artifact, req.Version); !found {
				return nil, launchererrors.NewConfigurationError(
					fmt.Errorf("%w: %s %q", ErrUnknownVersion, req.Artifact, req.Version))
			}
		}
	} else {
		target, found := m.ChannelDefault(req.Channel, req.Artifact)
		if !found {
			return nil, launchererrors.NewConfigurationError(
				fmt.Errorf("%w: channel %q, artifact %q", ErrNoChannelDefault, req.Channel, req.Artifact))
		}
		res.Target = target
	}

	if lo.Contains(installed, res.Target) {
		res.State = UpToDate
	} else {
		res.State = NeedsAction
	}
	return res, nil
}
