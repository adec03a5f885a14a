// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for ci-matrix.
//
// The central type is [Command], a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory and a Run function.
// [Command.Execute] routes on the first argument: a bare word selects a
// subcommand (ci-matrix validate), while no arguments or a leading flag
// run the command itself (ci-matrix --platform linux generates the
// document). Flags are declared as tagged struct fields and
// bound with [FlagsFromParams].
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against the known names and
// suggests the closest match (distance <= 3).
//
// [NewCommandLogger] builds the slog logger every command writes its
// diagnostics to, and [ExitError] lets a command choose its exit code
// after printing its own report.
package cli
