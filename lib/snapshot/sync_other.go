// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(darwin || linux)

package snapshot

// syncDirectory is a no-op where directories cannot be opened for fsync.
func syncDirectory(string) error { return nil }
