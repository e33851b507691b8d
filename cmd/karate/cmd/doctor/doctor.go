// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"karatelabs.io/x/launcher/pkg/archive"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/fetcher"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/launcherversion"
	"karatelabs.io/x/launcher/pkg/platform"
)

// report carries every diagnostic field; the json and prose renderings must
// not differ in content.
type report struct {
	LauncherVersion string           `json:"launcherVersion"`
	Platform        string           `json:"platform"`
	Home            string           `json:"home"`
	LocalOverrides  bool             `json:"localOverrides"`
	Channel         string           `json:"channel"`
	Version         string           `json:"version"`
	ArchiveRoot     string           `json:"archiveRoot"`
	ArchiveSource   string           `json:"archiveSource"`
	Archives        []string         `json:"archives"`
	ActiveArchive   string           `json:"activeArchive,omitempty"`
	ActiveSHA256    string           `json:"activeArchiveSha256,omitempty"`
	RuntimeRoot     string           `json:"runtimeRoot"`
	RuntimeSource   string           `json:"runtimeSource"`
	Runtimes        []jre.Candidate  `json:"runtimes"`
	ExtensionDirs   []string         `json:"extensionDirs"`
}

func Cmd(paths *launcherconfig.Paths, config *launcherconfig.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   string(builtincommand.Doctor),
		Short: "diagnose the local installation, read-only",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := platform.Detect()
			if err != nil {
				return err
			}

			archiveRoot, archiveProv := paths.ResolveRoot(launcherconfig.Archive)
			runtimeRoot, runtimeProv := paths.ResolveRoot(launcherconfig.Runtime)

			installed, err := archive.InstalledVersions(archiveRoot)
			if err != nil {
				return err
			}
			active, _ := archive.ActiveVersion(archiveRoot)
			activeSHA := ""
			if active != "" {
				// Best effort; a digest failure is reported as absence.
				activeSHA, _ = fetcher.FileSHA256(archive.JarPath(archiveRoot, active))
			}

			manager := jre.NewManager(paths, config, p)
			r := report{
				LauncherVersion: launcherversion.GetLauncherVersion(),
				Platform:        p.Key(),
				Home:            paths.Home,
				LocalOverrides:  paths.HasLocalOverrides(),
				Channel:         config.Channel,
				Version:         config.Version,
				ArchiveRoot:     archiveRoot,
				ArchiveSource:   archiveProv.String(),
				Archives:        installed,
				ActiveArchive:   active,
				ActiveSHA256:    activeSHA,
				RuntimeRoot:     runtimeRoot,
				RuntimeSource:   runtimeProv.String(),
				Runtimes:        manager.Doctor(),
				ExtensionDirs:   paths.ExtensionDirs(),
			}

			if asJSON {
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
				return nil
			}

			printReport(cmd, &r)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "structured output")
	return cmd
}

func printReport(cmd *cobra.Command, r *report) {
	cmd.Printf("launcher  %s\n", r.LauncherVersion)
	cmd.Printf("platform  %s\n", r.Platform)
	cmd.Printf("home      %s\n", r.Home)
	if r.LocalOverrides {
		cmd.Println("          project-local overrides in effect")
	}
	cmd.Printf("config    channel=%s version=%s\n", r.Channel, r.Version)

	cmd.Printf("\narchives (%s, %s)\n", r.ArchiveRoot, r.ArchiveSource)
	if len(r.Archives) == 0 {
		cmd.Println(color.YellowString("  none installed; run 'karate setup'"))
	}
	for _, v := range r.Archives {
		marker := " "
		if v == r.ActiveArchive {
			marker = "*"
		}
		cmd.Printf("  %s %s\n", marker, v)
	}
	if r.ActiveSHA256 != "" {
		cmd.Printf("    sha256 %s\n", r.ActiveSHA256)
	}

	cmd.Printf("\nruntimes (%s, %s)\n", r.RuntimeRoot, r.RuntimeSource)
	if len(r.Runtimes) == 0 {
		cmd.Println(color.YellowString("  no java candidates found"))
	}
	for _, c := range r.Runtimes {
		marker := " "
		if c.Selected {
			marker = "*"
		}
		line := string(c.Source)
		if c.Version != "" {
			line += " " + c.Version
		}
		if c.Path != "" {
			line += " (" + c.Path + ")"
		}
		if c.Detail != "" {
			line += " - " + c.Detail
		}
		if !c.Eligible {
			line = color.New(color.Faint).Sprint(line)
		}
		cmd.Printf("  %s %s\n", marker, line)
	}

	cmd.Println("\nextension dirs")
	for _, d := range r.ExtensionDirs {
		cmd.Printf("    %s\n", d)
	}
}
