// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package builtincommand

import (
	"github.com/samber/lo"
)

type BuiltinCommand string

const (
	Setup   BuiltinCommand = "setup"
	Update  BuiltinCommand = "update"
	Doctor  BuiltinCommand = "doctor"
	Jre     BuiltinCommand = "jre"
	Ext     BuiltinCommand = "ext"
	Config  BuiltinCommand = "config"
	Version BuiltinCommand = "version"
)

var BuiltinCommands = []BuiltinCommand{Setup, Update, Doctor, Jre, Ext, Config, Version}

// IsBuiltinCommand decides whether args address the launcher itself; any
// other first argument delegates to the application archive.
func IsBuiltinCommand(args []string) bool {
	if len(args) > 1 {
		elems := lo.Map(BuiltinCommands, func(item BuiltinCommand, _ int) string {
			return string(item)
		})
		return lo.Contains(elems, args[1])
	}
	return false
}
