// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
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
	var channel, version string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Setup),
		Short: "install the application archive and a managed java runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if channel != "" {
				config.Channel = channel
			}
			if version != "" {
				config.Version = version
			}

			p, err := platform.Detect()
			if err != nil {
				return err
			}
			if err := paths.EnsureGlobalDirs(); err != nil {
				return err
			}

			client := manifest.NewClient(paths)
			m, source := client.Resolve(ctx)
			if source != manifest.SourceRemote && source != manifest.SourceCache {
				cmd.PrintErrf("version manifest unavailable, using %s defaults\n", source)
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
				u.Confirm = ConfirmPrompt(cmd)
			}

			results := u.Run(ctx, components)
			return Report(cmd, results)
		},
	}

	cmd.Flags().StringSliceVar(&components, "components", nil,
		fmt.Sprintf("components to install (%s)", strings.Join(updater.Components, ", ")))
	cmd.Flags().BoolVar(&force, "force", false, "reinstall even when up to date")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&channel, "channel", "", "release channel override")
	cmd.Flags().StringVar(&version, "version", "", "archive version override")
	return cmd
}

// ConfirmPrompt asks on stderr and reads a y/n answer from the command's
// input stream.
func ConfirmPrompt(cmd *cobra.Command) func(prompt string) bool {
	reader := bufio.NewReader(cmd.InOrStdin())
	return func(prompt string) bool {
		cmd.PrintErrf("%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

// Report prints per-component outcomes and returns the most severe error,
// so the process exit code reflects the worst result.
func Report(cmd *cobra.Command, results []updater.Result) error {
	var worst error
	worstCode := 0
	for _, r := range results {
		switch r.Phase {
		case updater.PhaseFailed:
			cmd.PrintErrln(color.RedString("%s %s: %s", r.Component, r.Target, r.Detail))
		case updater.PhaseSkipped:
			cmd.Printf("%s: skipped (%s)\n", r.Component, r.Detail)
		case updater.PhaseUpToDate:
			cmd.Printf("%s %s: up to date\n", r.Component, r.Target)
		default:
			cmd.Println(color.GreenString("%s %s: installed", r.Component, r.Target))
		}
		if r.Err != nil {
			if code := updater.ExitCode([]updater.Result{r}); code > worstCode {
				worstCode = code
				worst = r.Err
			}
		}
	}
	return worst
}
