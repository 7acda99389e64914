// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for literate packages.
//
// [WriteTree] materializes a map of relative path to content as a
// project directory under t.TempDir(), so parser tests can describe a
// whole repository inline. Intermediate directories are created as
// needed.
//
// [RequireStrings] and [RequireErrorIs] compare results and call
// t.Fatalf with a caller supplied message on mismatch. The message is
// either a single string or a format string followed by arguments.
//
// [DiscardLogger] returns a *slog.Logger that drops every record, for
// constructors that require a logger.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no literate-internal dependencies.
package testutil
