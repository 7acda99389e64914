// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode sorts map keys and uses the smallest integer encodings, so
// environment variable maps encode identically across runs.
var encMode cbor.EncMode

// decMode ignores unknown fields so older readers accept snapshots
// written by newer resolvers.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Untyped targets (inspect output) decode maps with string
		// keys, which encoding/json can print.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Snapshots are small; anything this deep is corrupt.
		MaxNestedLevels: 64,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
