// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
)

func Cmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(builtincommand.Config),
		Short: "inspect launcher configuration",
	}
	cmd.AddCommand(showCmd(paths, config))
	return cmd
}

func showCmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "print the effective merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := *config
			if effective.CheckUpdates == nil {
				enabled := effective.CheckUpdatesEnabled()
				effective.CheckUpdates = &enabled
			}

			data, err := yaml.Marshal(&effective)
			if err != nil {
				return err
			}

			cmd.Printf("# global: %s\n", paths.GlobalConfigPath())
			cmd.Printf("# project: %s\n", paths.ProjectConfigPath())
			cmd.Print(string(data))
			return nil
		},
	}
}
