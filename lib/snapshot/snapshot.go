// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/jenkinsci/literate-api/lib/codec"
	"github.com/jenkinsci/literate-api/lib/model"
)

// Version is the snapshot format version written by [Encode].
const Version = 1

// HeaderSize is the size of the fixed header preceding the payload.
const HeaderSize = 4 + 1 + 1 + 4 + 32

var magic = [4]byte{'L', 'T', 'S', 'N'}

// ErrCorrupt is wrapped by every [Decode] error caused by the bytes
// themselves rather than by I/O.
var ErrCorrupt = errors.New("corrupt snapshot")

// Digest is a BLAKE3 digest of an uncompressed payload.
type Digest [32]byte

func (d Digest) String() string {
	return fmt.Sprintf("%x", d[:])
}

// digestKey separates snapshot digests from any other BLAKE3 use of the
// same bytes: ASCII "literate.snapshot", zero padded.
var digestKey = [32]byte{
	'l', 'i', 't', 'e', 'r', 'a', 't', 'e', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func digest(payload []byte) Digest {
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}

// Header describes an encoded snapshot.
type Header struct {
	Version     uint8
	Compression Compression
	Size        uint32
	Digest      Digest
}

// Encode serializes a model. The requested compression is recorded
// only when it shrinks the payload.
func Encode(project *model.ProjectModel, compression Compression) ([]byte, error) {
	payload, err := codec.Marshal(project.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot payload: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("snapshot payload of %d bytes is too large", len(payload))
	}

	body, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		body, compression = payload, CompressionNone
	} else if err != nil {
		return nil, err
	}

	header := Header{
		Version:     Version,
		Compression: compression,
		Size:        uint32(len(payload)),
		Digest:      digest(payload),
	}
	var buffer bytes.Buffer
	buffer.Grow(HeaderSize + len(body))
	buffer.Write(magic[:])
	buffer.WriteByte(header.Version)
	buffer.WriteByte(byte(header.Compression))
	buffer.Write(binary.BigEndian.AppendUint32(nil, header.Size))
	buffer.Write(header.Digest[:])
	buffer.Write(body)
	return buffer.Bytes(), nil
}

// ReadHeader parses and checks the fixed header of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrCorrupt, len(data), HeaderSize)
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	header := Header{
		Version:     data[4],
		Compression: Compression(data[5]),
		Size:        binary.BigEndian.Uint32(data[6:10]),
	}
	copy(header.Digest[:], data[10:HeaderSize])
	if header.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, header.Version)
	}
	if header.Compression > CompressionZstd {
		return Header{}, fmt.Errorf("%w: unknown compression tag %d", ErrCorrupt, uint8(header.Compression))
	}
	return header, nil
}

// DecodeSnapshot verifies data and returns its serializable form.
func DecodeSnapshot(data []byte) (Header, model.Snapshot, error) {
	header, err := ReadHeader(data)
	if err != nil {
		return Header{}, model.Snapshot{}, err
	}
	payload, err := decompress(data[HeaderSize:], header.Compression, int(header.Size))
	if err != nil {
		return Header{}, model.Snapshot{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if actual := digest(payload); actual != header.Digest {
		return Header{}, model.Snapshot{}, fmt.Errorf("%w: digest %s does not match header %s", ErrCorrupt, actual, header.Digest)
	}
	var snapshot model.Snapshot
	if err := codec.Unmarshal(payload, &snapshot); err != nil {
		return Header{}, model.Snapshot{}, fmt.Errorf("%w: decoding payload: %w", ErrCorrupt, err)
	}
	return header, snapshot, nil
}

// Decode verifies data and rebuilds the model it holds.
func Decode(data []byte) (*model.ProjectModel, error) {
	_, snapshot, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return snapshot.Model(), nil
}

// WriteFile encodes a model to path atomically: the snapshot is written
// to a temporary file in the same directory, synced, and renamed into
// place.
func WriteFile(path string, project *model.ProjectModel, compression Compression) error {
	data, err := Encode(project, compression)
	if err != nil {
		return err
	}
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer os.Remove(temporary.Name())
	if err := temporary.Chmod(0o644); err != nil {
		temporary.Close()
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("renaming snapshot into %s: %w", path, err)
	}
	return syncDirectory(filepath.Dir(path))
}

// ReadFile reads and decodes the snapshot at path.
func ReadFile(path string) (*model.ProjectModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	project, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return project, nil
}
