// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	karate "karatelabs.io/x/launcher/cmd/karate/cmd"
	"karatelabs.io/x/launcher/pkg/launchererrors"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelFn()

	k := karate.Karate{
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
		ExitFn: os.Exit,
		OsArgs: os.Args,
	}
	cmd, err := karate.RootCmd(ctx, &k)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(launchererrors.ExitCode(err))
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(launchererrors.ExitCode(err))
	}
}
