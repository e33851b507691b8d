// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/launcherversion"
)

func Cmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   string(builtincommand.Version),
		Short: "show the launcher version",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := launcherversion.Get()
			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
				return nil
			}
			cmd.Printf("%s (build %s, %s)\n", info.Version, info.Build, info.BuildDate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "structured output")
	return cmd
}
