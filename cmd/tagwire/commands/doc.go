// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the tagwire command tree.
//
// [Root] returns the top-level command with its global flags (--config,
// --log-level) and the subcommands:
//
//   - encode: JSON (comments allowed) to a tagged stream
//   - decode: tagged stream to JSON, using the marker-object mapping of
//     lib/codec for variants JSON cannot express
//   - diag: one line of wire-level notation per value
//   - digest: BLAKE3 digest of the stream bytes, with --verify
//   - cbor: decoded values re-encoded as deterministic CBOR
//   - version: build information
//
// Every stream-reading command takes an optional file argument (stdin
// otherwise) and accepts raw, --hex or --base64 input. Defaults for
// input format, output style, buffer capacity and log level come from
// the configuration file (see lib/config); flags override them.
//
// Commands read and write through an environment holding stdin, stdout
// and stderr so tests drive the whole tree on in-memory buffers.
package commands
