// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	configCmd "karatelabs.io/x/launcher/cmd/karate/cmd/config"
	"karatelabs.io/x/launcher/cmd/karate/cmd/doctor"
	extCmd "karatelabs.io/x/launcher/cmd/karate/cmd/ext"
	jreCmd "karatelabs.io/x/launcher/cmd/karate/cmd/jre"
	"karatelabs.io/x/launcher/cmd/karate/cmd/setup"
	"karatelabs.io/x/launcher/cmd/karate/cmd/update"
	versionCmd "karatelabs.io/x/launcher/cmd/karate/cmd/version"
	"karatelabs.io/x/launcher/pkg/builtincommand"
	"karatelabs.io/x/launcher/pkg/jre"
	"karatelabs.io/x/launcher/pkg/launcher"
	"karatelabs.io/x/launcher/pkg/launcherconfig"
	"karatelabs.io/x/launcher/pkg/logging"
	"karatelabs.io/x/launcher/pkg/platform"
)

const KarateName = "karate"

// Karate carries the process-level dependencies of the CLI so tests can
// substitute streams and the exit function.
type Karate struct {
	Stderr, Stdout, Stdin *os.File
	ExitFn                func(exitCode int)
	// must contain at least one argument, namely the binary name, similar to os.Args
	OsArgs []string
}

func (k *Karate) SetOutputStreams(cmd *cobra.Command) {
	cmd.SetOut(k.Stdout)
	cmd.SetErr(k.Stderr)
	cmd.SetIn(k.Stdin)

	lo.ForEach(cmd.Commands(), func(sub *cobra.Command, _ int) {
		k.SetOutputStreams(sub)
	})
}

func RootCmd(ctx context.Context, k *Karate) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   KarateName,
		Short: "launcher for the Karate test automation tool",
	}

	defer k.SetOutputStreams(cmd)

	if len(k.OsArgs) == 0 {
		return nil, fmt.Errorf("Karate.OsArgs must contain at least one entry similar to os.Args")
	}
	cmd.SetArgs(k.OsArgs[1:])

	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	var noColor bool
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	}

	paths, err := launcherconfig.NewPaths()
	if err != nil {
		return nil, err
	}
	config, err := launcherconfig.LoadMerged(paths)
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(
		setup.Cmd(paths, config),
		update.Cmd(paths, config),
		doctor.Cmd(paths, config),
		jreCmd.Cmd(paths, config),
		extCmd.Cmd(paths),
		configCmd.Cmd(paths, config),
		versionCmd.Cmd(),
	)

	if shouldDelegate(k.OsArgs) {
		cmd.DisableFlagParsing = true
		cmd.Args = cobra.ArbitraryArgs
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			return delegate(cmd.Context(), k, paths, config, k.OsArgs[1:])
		}
	}

	return cmd, nil
}

// shouldDelegate decides whether the invocation addresses the application
// archive instead of the launcher itself. Help and version requests stay
// with the launcher.
func shouldDelegate(osArgs []string) bool {
	if len(osArgs) < 2 {
		return false
	}
	if builtincommand.IsBuiltinCommand(osArgs) {
		return false
	}
	return !lo.Contains([]string{"--help", "-h", "help", "--version", "completion",
		cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd}, osArgs[1])
}

func delegate(ctx context.Context, k *Karate, paths *launcherconfig.Paths, config *launcherconfig.Config, args []string) error {
	p, err := platform.Detect()
	if err != nil {
		return err
	}

	l := &launcher.Launcher{
		Stderr:   k.Stderr,
		Stdout:   k.Stdout,
		Stdin:    k.Stdin,
		ExitFn:   k.ExitFn,
		Paths:    paths,
		Config:   config,
		Runtimes: jre.NewManager(paths, config, p),
	}
	return l.Run(ctx, args)
}
