// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package versions renders installed and published artifact versions for
// the list commands. Ordering here is presentation only; resolution never
// compares versions.
package versions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

type Version struct {
	Version   string   `json:"version"`
	Installed bool     `json:"installed,omitempty"`
	Remote    bool     `json:"remote,omitempty"`
	Active    bool     `json:"active,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type Versions []*Version

type versionsMap map[string]*Version

// New merges the active, installed, and remote version sets into one
// de-duplicated list. Remote tags are typically channel names.
func New(active string, installed []string, remote map[string][]string) Versions {
	m := versionsMap{}

	if active != "" {
		m.add(&Version{Version: active, Active: true})
	}

	for _, v := range installed {
		m.add(&Version{Version: v, Installed: true})
	}

	for v, tags := range remote {
		m.add(&Version{Version: v, Remote: true, Tags: tags})
	}

	r := Versions(lo.Values(m))
	r.Sort()
	return r
}

func (v versionsMap) add(e *Version) {
	existing, ok := v[e.Version]
	if !ok {
		v[e.Version] = e
		return
	}

	existing.Installed = existing.Installed || e.Installed
	existing.Remote = existing.Remote || e.Remote
	existing.Active = existing.Active || e.Active
	existing.Tags = append(existing.Tags, e.Tags...)
}

// Sort orders by semantic version where both sides parse, lexically otherwise.
func (v Versions) Sort() {
	slices.SortFunc(v, func(a, b *Version) int {
		return compareVersions(a.Version, b.Version)
	})
}

// SortByInstalled sorts installed versions last so they render closest to
// the prompt, then by version.
func (v Versions) SortByInstalled() {
	slices.SortFunc(v, func(a, b *Version) int {
		if a.Installed && !b.Installed {
			return 1
		}
		if !a.Installed && b.Installed {
			return -1
		}
		return compareVersions(a.Version, b.Version)
	})
}

func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

func (v Versions) Table() string {
	rows := make(Versions, len(v))
	copy(rows, v)
	rows.SortByInstalled()

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(lo.Map(rows, func(row *Version, _ int) []string {
			indicator := ""
			version := row.Version

			if len(row.Tags) > 0 {
				tags := strings.Join(row.Tags, ", ")
				version = fmt.Sprintf("%s\t(%s)", version, tags)
			}

			switch {
			case row.Active:
				indicator = "*"
				version = lipgloss.NewStyle().
					Foreground(lipgloss.Color("2")).
					Bold(true).
					Render(version)
			case !row.Installed:
				version = lipgloss.NewStyle().
					Faint(true).
					Italic(true).
					Render(version)
			}

			return []string{
				indicator,
				version,
			}
		})...).
		String()
}
