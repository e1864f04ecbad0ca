// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEnd is returned when a read needs more bytes than the
// buffer holds. The stream is truncated or the reader is out of step
// with the writer.
var ErrUnexpectedEnd = errors.New("wire: unexpected end of buffer")

// ErrMalformed is returned when the bytes at the cursor cannot be a
// valid encoding: an overlong varint, an impossible integer header, a
// token ID that skips ahead, nesting deeper than [MaxDepth]. Errors
// wrapping it carry the specific reason.
var ErrMalformed = errors.New("wire: malformed input")

// RangeError reports a value outside the domain of a fixed-width or
// varint writer. Nothing is written when the check fails.
type RangeError struct {
	// Op is the writer that rejected the value (e.g. "WriteUInt24").
	Op string

	// Value is the rejected value.
	Value int64

	// Max is the largest value Op accepts. The smallest is always 0.
	Max int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("wire: %s: value %d out of range [0, %d]", e.Op, e.Value, e.Max)
}

// UnknownTagError reports a tag byte outside the closed set of value
// variants. It indicates corruption or a stream written by an
// incompatible version; there is no fallback.
type UnknownTagError struct {
	Tag byte

	// Offset is the position of the tag byte in the buffer.
	Offset int
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("wire: unknown tag 0x%02x at offset %d", e.Tag, e.Offset)
}

// MissingSerializerError reports a [Registered] value whose type name
// has no entry in the buffer's registry. When decoding, the caller has
// no way to interpret the bytes that follow, so the error is final.
type MissingSerializerError struct {
	Type string
}

func (e *MissingSerializerError) Error() string {
	return "wire: no registered serializer for type: " + e.Type
}

// malformed wraps ErrMalformed with a formatted reason.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
