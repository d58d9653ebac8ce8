// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the keepsake binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// pflag flags bound from tagged parameter structs ([FlagsFromParams]),
// and suggests the closest command or flag on typos. Commands return
// [ToolError] values carrying a category and an optional hint, or
// [ExitError] when they have already reported the failure. [JSONOutput]
// adds a --json flag to any parameter struct.
package cli
