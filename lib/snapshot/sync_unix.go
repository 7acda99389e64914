// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package snapshot

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// syncDirectory flushes a directory entry so a rename into it survives
// a crash.
func syncDirectory(path string) error {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("opening directory %s: %w", path, err)
	}
	defer unix.Close(fd)
	if err := unix.Fsync(fd); err != nil {
		return fmt.Errorf("syncing directory %s: %w", path, err)
	}
	return nil
}
