// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output, as "literate build" does when no build applies to the
// queried environment.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to tell a handled exit from an error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
