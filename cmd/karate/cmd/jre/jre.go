// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jre

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/manifest"
	"karatelabs.io/x/launcher/pkg/platform"
	"karatelabs.io/x/launcher/pkg/versions"
)

func Cmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(builtincommand.Jre),
		Short: "manage the java runtime",
	}
	cmd.AddCommand(listCmd(paths, config))
	return cmd
}

func listCmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	var all bool
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "show managed java runtimes",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := platform.Detect()
			if err != nil {
				return err
			}

			manager := jre.NewManager(paths, config, p)
			installed, err := manager.InstalledVersions()
			if err != nil {
				return err
			}

			var active string
			if r, err := manager.Resolve(); err == nil && r.Source == jre.SourceManaged {
				active = r.Version
			}

			remote := map[string][]string{}
			if all {
				m, _ := manifest.NewClient(paths).Resolve(cmd.Context())
				for _, v := range m.Versions(manifest.RuntimeArtifact) {
					entry, _ := m.Version(manifest.RuntimeArtifact, v)
					remote[v] = entry.Channels
				}
			}

			v := versions.New(active, installed, remote)

			switch output {
			case "table":
				cmd.Println(v.Table())
			case "json":
				data, err := json.MarshalIndent(v, "", "    ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "include versions published in the manifest")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table")
	return cmd
}
