// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"fmt"
)

// ErrNoBuilder is returned by [Source.Submit] when no builder produced
// a model and none reported a more specific cause.
var ErrNoBuilder = errors.New("could not find a builder to instantiate a model")

// BuildingError reports that a builder does not apply to a project.
// It is recoverable: the next builder is tried.
type BuildingError struct {
	err error
}

// NewBuildingError formats a [BuildingError]. The format accepts %w.
func NewBuildingError(format string, args ...any) *BuildingError {
	return &BuildingError{err: fmt.Errorf(format, args...)}
}

func (e *BuildingError) Error() string { return e.err.Error() }

func (e *BuildingError) Unwrap() error { return errors.Unwrap(e.err) }

// ValidationError reports a document of the right format that cannot
// be turned into a model. It is not recoverable.
type ValidationError struct {
	err error
}

// NewValidationError formats a [ValidationError]. The format accepts %w.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{err: fmt.Errorf(format, args...)}
}

func (e *ValidationError) Error() string { return e.err.Error() }

func (e *ValidationError) Unwrap() error { return errors.Unwrap(e.err) }

// IsRecoverable reports whether err lets [Source.Submit] move on to the
// next builder.
func IsRecoverable(err error) bool {
	return err != nil && !isFatal(err)
}
