// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot stores resolved project models in a compact,
// self-verifying binary form.
//
// A snapshot lets the resolver run once, next to the repository, and
// hand its result to a build orchestrator that never parses Markdown
// or YAML itself. The layout is:
//
//	offset  size  field
//	0       4     magic "LTSN"
//	4       1     format version (1)
//	5       1     compression tag (none, lz4, zstd)
//	6       4     uncompressed payload length, big endian
//	10      32    BLAKE3 keyed digest of the uncompressed payload
//	42      ...   payload, compressed as tagged
//
// The payload is the CBOR encoding ([codec.Marshal]) of a
// [model.Snapshot]. [Decode] checks every header field and the digest
// before decoding the payload, so a truncated or altered file is
// reported rather than silently producing a different model.
//
// When compression would not shrink the payload, [Encode] stores it
// uncompressed and records [CompressionNone] in the header.
package snapshot
