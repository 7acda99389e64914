// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the literate CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/literate/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]. Embedding [JSONOutput] adds a --json flag.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Commands signal a handled non-zero exit (for example "no build for this
// environment") by returning an [ExitError].
package cli
