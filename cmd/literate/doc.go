// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Literate resolves the build model of a literate project: the
// environments it runs on, the build commands for each environment,
// and its named tasks. Models come from a Markdown file
// (.cloudbees.md, falling back to README.md) or a YAML file
// (.cloudbees.yml, .travis.yml).
package main
