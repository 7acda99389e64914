// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the literate resolver configuration.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the LITERATE_CONFIG environment variable (via
// [Load]). There is no search path: without either, [Default] applies.
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; anything else is read as YAML.
//
// After loading, ${VAR} and ${VAR:-default} patterns in path fields
// are expanded from the environment. No other environment variables
// override config values; the CLI applies its flags on top.
//
// Key exports:
//
//   - [Config] -- request defaults, parser options, logging, snapshots
//   - [Default] -- the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other literate packages.
package config
