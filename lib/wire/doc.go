// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements tagwire's compact, self-describing binary
// format: a growable byte [Buffer] with a single read/write cursor,
// primitive integer and string encodings built directly on it, a
// per-buffer string interning table, a per-buffer registry of
// application serializers, and a recursive tagged-union codec for
// [Value] trees.
//
// # Usage
//
// The common pattern is "write once, read back from the start":
//
//	buffer := wire.New()
//	if err := buffer.WriteSerializable(value); err != nil {
//	    return err
//	}
//	encoded := buffer.Bytes()
//
//	reader := wire.FromBytes(encoded)
//	decoded, err := reader.ReadSerializable()
//
// [Buffer.Rewind] moves the cursor back to the start of a buffer that
// was just written, so the same instance can read what it wrote.
//
// # Wire format
//
// Every value starts with one tag byte. Tags 0 through 18 name a
// variant (see [Tag]); tags 32 through 255 inline the integers 0
// through 223 directly in the tag byte. Containers are length-prefixed
// with an unsigned varint. There is no stream header and no
// end-of-stream marker: consumers know how many top-level values to
// expect.
//
// Primitive encodings:
//
//   - Unsigned varint: base-128, little-endian 7-bit groups, high bit
//     set on every byte except the last. Domain 0..2³¹−1.
//   - UInt24 / UInt31: big-endian, exactly 3 / 4 bytes.
//   - Signed integer: one header byte (bit 7 = sign, bits 0–4 = byte
//     count) followed by that many little-endian magnitude bytes.
//   - String: varint count of UTF-16 code units, then one varint per
//     code unit. This is bulkier than UTF-8 for non-ASCII text but
//     needs no multi-byte decode logic, and the byte length follows
//     directly from the code-unit count.
//   - Token: varint ID, followed by the string only the first time that
//     ID appears in the current pass.
//
// # Tokens
//
// Object keys and registered type names are interned: the first
// occurrence writes the full string, later occurrences write only its
// ID. The stream carries no token directory, so a reader must decode
// tokens in exactly the order they were written. Reading a token out
// of order yields the wrong string, not an error.
//
// # Registered types
//
// Application types travel as [Registered] values. Each buffer has its
// own registry, populated with [Register]; there is no global registry.
// A reader must register every type it expects to decode before
// decoding it, otherwise decoding fails with [*MissingSerializerError].
//
// # Concurrency
//
// A Buffer, its token table, and its registry are not safe for
// concurrent use. Use one Buffer per goroutine.
package wire
