// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package ext

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
)

func Cmd(paths *launcherconfig.Paths) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(builtincommand.Ext),
		Short: "manage extension jars",
	}
	cmd.AddCommand(listCmd(paths))
	return cmd
}

func listCmd(paths *launcherconfig.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "show extension jars on the classpath, in precedence order",
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := map[string]bool{}
			found := false

			for _, dir := range paths.ExtensionDirs() {
				entries, err := os.ReadDir(dir)
				if err != nil {
					continue
				}
				for _, e := range entries {
					if e.IsDir() || !strings.HasSuffix(e.Name(), ".jar") {
						continue
					}
					found = true
					if seen[e.Name()] {
						cmd.Printf("  %s (%s, shadowed)\n", e.Name(), dir)
						continue
					}
					seen[e.Name()] = true
					cmd.Printf("  %s (%s)\n", e.Name(), dir)
				}
			}

			if !found {
				cmd.Println("no extension jars installed")
			}
			return nil
		},
	}
}
