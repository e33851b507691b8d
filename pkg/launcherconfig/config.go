// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcherconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"karatelabs.io/x/launcher/pkg/launchererrors"
	"karatelabs.io/x/launcher/pkg/utils"
)

// Config is the merged launcher configuration. It is a read-only snapshot
// per invocation, produced by layering:
// env var / flag override > project config > global config > defaults.
type Config struct {
	// Channel is the release track used when Version is "latest".
	Channel string `yaml:"channel,omitempty"`

	// Version is a concrete archive version or "latest".
	Version string `yaml:"version,omitempty"`

	// JrePath is an explicit runtime directory. When set it is trusted
	// without version re-validation and wins over discovery.
	JrePath string `yaml:"jre-path,omitempty"`

	// DistPath is an explicit directory containing archive jar(s). When set,
	// manifest lookup of pinned versions is skipped entirely.
	DistPath string `yaml:"dist-path,omitempty"`

	// JvmOptions are extra options passed to the JVM on delegated runs.
	JvmOptions string `yaml:"jvm-options,omitempty"`

	// CheckUpdates enables the passive update check on delegated runs.
	// Tri-state so that merging can tell "unset" from "false".
	CheckUpdates *bool `yaml:"check-updates,omitempty"`
}

func Default() *Config {
	return &Config{
		Channel: DefaultChannel,
		Version: LatestVersion,
	}
}

// IsPinned reports whether a concrete version (not "latest") is configured.
func (c *Config) IsPinned() bool {
	return c.Version != "" && c.Version != LatestVersion
}

func (c *Config) CheckUpdatesEnabled() bool {
	if c.CheckUpdates == nil {
		return true
	}
	return *c.CheckUpdates
}

// Merge layers other on top of c; set fields in other win.
func (c *Config) Merge(other *Config) {
	if other.Channel != "" {
		c.Channel = other.Channel
	}
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.JrePath != "" {
		c.JrePath = other.JrePath
	}
	if other.DistPath != "" {
		c.DistPath = other.DistPath
	}
	if other.JvmOptions != "" {
		c.JvmOptions = other.JvmOptions
	}
	if other.CheckUpdates != nil {
		c.CheckUpdates = other.CheckUpdates
	}
}

// LoadFile reads a single config file. A missing file yields an empty layer.
func LoadFile(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, launchererrors.NewConfigurationError(
			fmt.Errorf("failed to parse config %q: %w", path, err))
	}
	return &config, nil
}

// LoadMerged produces the effective configuration for this invocation:
// defaults, then the global file, then the project file, then env overrides.
func LoadMerged(paths *Paths) (*Config, error) {
	config := Default()

	global, err := LoadFile(paths.GlobalConfigPath())
	if err != nil {
		return nil, err
	}
	config.Merge(global)

	project, err := LoadFile(paths.ProjectConfigPath())
	if err != nil {
		return nil, err
	}
	config.Merge(project)

	if v, ok := os.LookupEnv(ChannelEnvVar); ok {
		config.Channel = v
	}
	if v, ok := os.LookupEnv(VersionEnvVar); ok {
		config.Version = v
	}
	checkUpdates, ok, err := utils.BoolEnvVar(CheckUpdatesEnvVar)
	if err != nil {
		return nil, launchererrors.NewConfigurationError(err)
	}
	if ok {
		config.CheckUpdates = &checkUpdates
	}

	if config.Channel == "" {
		return nil, launchererrors.NewConfigurationError(fmt.Errorf("'channel' must not be empty"))
	}
	if config.Version == "" {
		return nil, launchererrors.NewConfigurationError(fmt.Errorf("'version' must not be empty"))
	}

	// Relative override paths are anchored at the invocation directory.
	if config.JrePath != "" {
		config.JrePath = utils.ResolvePath(paths.Cwd, config.JrePath)
	}
	if config.DistPath != "" {
		config.DistPath = utils.ResolvePath(paths.Cwd, config.DistPath)
	}

	return config, nil
}
