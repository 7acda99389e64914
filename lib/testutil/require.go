// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"slices"
)

// RequireStrings fails the test unless got and want hold the same
// strings in the same order. A nil slice equals an empty one.
//
//	testutil.RequireStrings(t, project.BuildForLabels("linux"), []string{"make"}, "linux build")
func RequireStrings(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []string, msgAndArgs ...any) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("%s: got %q, want %q", formatMessage(msgAndArgs), got, want)
	}
}

// RequireErrorIs fails the test unless errors.Is(err, target).
//
//	testutil.RequireErrorIs(t, err, repository.ErrPathNotFound, "reading missing file")
func RequireErrorIs(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: error = %v, want %v", formatMessage(msgAndArgs), err, target)
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
