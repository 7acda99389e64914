// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package source resolves a project's build model by trying a set of
// competing document parsers.
//
// A [Source] holds an explicit list of [Builder] implementations, sorted
// once by descending [Builder.Priority]. [Source.Submit] tries each in
// turn against a [Request] and returns the first model produced.
//
// Builders report failure through three kinds of error:
//
//   - [*BuildingError]: the builder does not apply (its marker file is
//     absent, or the document does not look like its format). The
//     Source moves on to the next builder.
//   - [*ValidationError]: the document is of the builder's format but is
//     semantically invalid. The Source stops and returns it.
//   - any other error is a transport failure from the repository. The
//     Source moves on, but remembers it.
//
// Errors wrapping [model.ErrMisuse] are returned immediately, like
// validation failures. When every builder fails, Submit returns the
// first transport failure if there was one, else the first building
// error, else [ErrNoBuilder]. Panics raised by a builder are not
// recovered.
//
// A Source carries no per-request state and is safe for concurrent
// use.
package source
