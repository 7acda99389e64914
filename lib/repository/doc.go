// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package repository provides read access to the files of a project.
//
// Parsers never touch the filesystem directly: they see a project only
// through the [Repository] interface, which supports reading a file,
// probing whether a path is a file or a directory, and listing a
// directory. Paths are slash separated and relative to the repository
// root; a leading "/" is accepted and ignored.
//
// Two implementations are provided. [Filesystem] serves a directory on
// the local disk and refuses paths that resolve outside of it.
// [Memory] serves an in-memory map and is used by tests and by callers
// that already hold the project files (for example, fetched from a
// remote source control host).
package repository
