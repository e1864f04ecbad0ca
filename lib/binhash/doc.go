// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content digests of encoded tagwire
// streams.
//
// A digest identifies an encoded stream by content: two streams with
// the same bytes have the same digest regardless of how they were
// transported (raw, hex, Base64). Digests are plain BLAKE3-256, so
// they match the output of b3sum for the same bytes.
//
// The API surface:
//
//   - [Sum] -- digest of a byte slice
//   - [Digest.String] and [Parse] -- the canonical lowercase hex form,
//     used in CLI output and logs
//   - [Digest.MarshalWire], [ReadDigest] and [Register] -- a digest on
//     the wire as a 32-byte fixed array, either written directly or
//     carried as a registered value under [TypeName]
package binhash
