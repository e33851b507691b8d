// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/cmd/karate/cmd/setup"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/fetcher"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/manifest"
	"karatelabs.io/x/launcher/pkg/platform"
	"karatelabs.io/x/launcher/pkg/updater"
)

func Cmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	var components []string
	var force, yes bool
	var channel string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Update),
		Short: "update installed components to the channel's published versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if channel != "" {
				config.Channel = channel
			}

			p, err := platform.Detect()
			if err != nil {
				return err
			}
			if err := paths.EnsureGlobalDirs(); err != nil {
				return err
			}

			// An explicit update wants current data: fetch the remote
			// manifest and only then degrade to the cached layers.
			client := manifest.NewClient(paths)
			m, err := client.Fetch(ctx)
			if err != nil {
				cmd.PrintErrf("manifest fetch failed (%v), falling back\n", err)
				var source manifest.Source
				m, source = client.Resolve(ctx)
				cmd.PrintErrf("using %s manifest\n", source)
			}

			u := &updater.Updater{
				Paths:      paths,
				Config:     config,
				Platform:   p,
				Manifest:   m,
				Downloader: fetcher.NewDownloader(),
				Runtimes:   jre.NewManager(paths, config, p),
				Force:      force,
				Printer:    cmd,
			}
			if !yes {
				u.Confirm = setup.ConfirmPrompt(cmd)
			}

			results := u.Run(ctx, components)
			return setup.Report(cmd, results)
		},
	}

	cmd.Flags().StringSliceVar(&components, "components", nil,
		fmt.Sprintf("components to update (%s)", strings.Join(updater.Components, ", ")))
	cmd.Flags().BoolVar(&force, "force", false, "reinstall even when up to date")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&channel, "channel", "", "release channel override")
	return cmd
}
