// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used for resolved model
// snapshots.
//
// JSON is used where people or other tools read the model (CLI
// output). CBOR is used for snapshot files handed from the resolver to
// a build orchestrator. Snapshot types carry json struct tags only;
// fxamacker/cbor falls back to them, so one tag controls field naming
// and omitempty for both encodings.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): the
// same model always encodes to the same bytes, which keeps snapshot
// digests stable.
//
//	data, err := codec.Marshal(project.Snapshot())
//	err = codec.Unmarshal(data, &snapshot)
package codec
