// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts tagwire values to and from the two
// interchange formats the command line speaks:
//
//   - JSON for human-facing input and output. [FromJSON] accepts JSON
//     with comments and trailing commas (via tidwall/jsonc) and may
//     hold several top-level values; [ToJSON] renders one value,
//     keeping object field order.
//   - CBOR for handing decoded streams to other tooling. [ToCBOR]
//     produces a Go tree that [Marshal] encodes with Core
//     Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
//     smallest integer encoding, no indefinite-length items.
//
// # JSON mapping
//
// JSON null, booleans, strings, numbers, arrays and objects map
// directly onto the corresponding [wire.Value] variants. Variants JSON
// cannot express travel as single-key marker objects:
//
//	{"$undefined": true}
//	{"$hole": true}
//	{"$number": "NaN"}          // also "Infinity", "-Infinity"
//	{"$date": 1700000000000}    // epoch milliseconds
//	{"$set": [1, 2, 3]}
//
// Registered values export as {"$registered": "name", "$object": ...}
// with the object rendered by encoding/json. They cannot be imported:
// building a registered value needs the application's serializer, so
// [FromJSON] rejects the marker with [ErrRegisteredImport].
//
// # CBOR mapping
//
// Undefined and Hole both become the CBOR undefined simple value,
// Date becomes tag 1 (epoch seconds, fractional when the milliseconds
// demand it), and Set becomes tag 258 (RFC 9090 style finite set)
// around an array in insertion order. Objects become text-keyed maps,
// which deterministic encoding sorts.
package codec
