// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"github.com/spf13/cobra"
)

// RawPrinter is the stderr surface the update engine reports progress
// through, satisfied by the cobra command that invoked it.
type RawPrinter interface {
	PrintErr(i ...interface{})
	PrintErrln(i ...interface{})
	PrintErrf(format string, i ...interface{})
}

var _ RawPrinter = (*cobra.Command)(nil)
