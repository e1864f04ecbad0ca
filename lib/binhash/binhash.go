// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/tagwire/lib/wire"
)

// Size is the length of a digest in bytes.
const Size = 32

// TypeName is the registered type name under which a Digest travels
// inside a serialized value.
const TypeName = "binhash.digest"

// Digest is a BLAKE3-256 digest.
type Digest [Size]byte

// Sum returns the BLAKE3-256 digest of data.
func Sum(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse parses a hex-encoded digest. The string must encode exactly
// Size bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}

// MarshalText implements encoding.TextMarshaler with the hex form, so
// a digest renders as a string in JSON and CBOR.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalWire writes d as a fixed 32-byte array. It lets a Digest
// travel as a registered value on buffers that have no serializer
// registered for [TypeName].
func (d Digest) MarshalWire(buffer *wire.Buffer) error {
	buffer.WriteFixedByteArray(d[:])
	return nil
}

// ReadDigest reads a digest written by [Digest.MarshalWire].
func ReadDigest(buffer *wire.Buffer) (Digest, error) {
	var digest Digest
	data, err := buffer.ReadFixedByteArray(Size)
	if err != nil {
		return digest, fmt.Errorf("reading digest: %w", err)
	}
	copy(digest[:], data)
	return digest, nil
}

// Register installs the Digest serializer on buffer under [TypeName].
func Register(buffer *wire.Buffer) {
	wire.Register(buffer, TypeName,
		func(buffer *wire.Buffer, digest Digest) error { return digest.MarshalWire(buffer) },
		ReadDigest,
	)
}
