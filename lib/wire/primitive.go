// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"math/bits"
	"unicode/utf16"
)

const (
	// MaxSmallNonNegativeInteger is the largest value the unsigned
	// varint encoding accepts.
	MaxSmallNonNegativeInteger = 1<<31 - 1

	// MaxUInt31 is the largest value [Buffer.WriteUInt31] accepts.
	MaxUInt31 = 1<<31 - 1

	// MaxUInt24 is the largest value [Buffer.WriteUInt24] accepts.
	MaxUInt24 = 1<<24 - 1

	// MaxSafeInteger is the largest integer a float64 represents
	// exactly along with all its neighbours (2⁵³−1).
	MaxSafeInteger = 1<<53 - 1

	// maxVarintBytes covers 31 bits in 7-bit groups.
	maxVarintBytes = 5

	// Signed integer header layout.
	integerSignBit   = 0x80
	integerCountMask = 0x1f
	integerReserved  = 0x60
)

// WriteSmallNonNegativeInteger writes value as an unsigned base-128
// varint: little-endian 7-bit groups, high bit set on all but the last
// byte. Values outside [0, MaxSmallNonNegativeInteger] fail with
// [*RangeError].
func (b *Buffer) WriteSmallNonNegativeInteger(value int) error {
	if value < 0 || value > MaxSmallNonNegativeInteger {
		return &RangeError{Op: "WriteSmallNonNegativeInteger", Value: int64(value), Max: MaxSmallNonNegativeInteger}
	}
	b.putVarint(uint32(value))
	return nil
}

// putVarint writes a varint without a domain check. Every caller has
// already bounded value to 31 bits (or 16, for string code units).
func (b *Buffer) putVarint(value uint32) {
	b.ensureCapacity(maxVarintBytes)
	for value >= 0x80 {
		b.data[b.offset] = byte(value) | 0x80
		b.offset++
		value >>= 7
	}
	b.data[b.offset] = byte(value)
	b.offset++
	b.length = b.offset
}

// ReadSmallNonNegativeInteger reads an unsigned varint written by
// [Buffer.WriteSmallNonNegativeInteger].
func (b *Buffer) ReadSmallNonNegativeInteger() (int, error) {
	var result uint64
	for shift := 0; shift < 7*maxVarintBytes; shift += 7 {
		c, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(c&0x7f) << shift
		if c < 0x80 {
			if result > MaxSmallNonNegativeInteger {
				return 0, malformed("varint %d exceeds %d", result, MaxSmallNonNegativeInteger)
			}
			return int(result), nil
		}
	}
	return 0, malformed("varint longer than %d bytes", maxVarintBytes)
}

// WriteUInt31 writes value as exactly 4 big-endian bytes. Use it
// instead of a varint when the bound is known ahead of time and the
// fixed width is acceptable.
func (b *Buffer) WriteUInt31(value int) error {
	if value < 0 || value > MaxUInt31 {
		return &RangeError{Op: "WriteUInt31", Value: int64(value), Max: MaxUInt31}
	}
	binary.BigEndian.PutUint32(b.grow(4), uint32(value))
	return nil
}

// ReadUInt31 reads 4 big-endian bytes written by [Buffer.WriteUInt31].
func (b *Buffer) ReadUInt31() (int, error) {
	raw, err := b.next(4)
	if err != nil {
		return 0, err
	}
	value := binary.BigEndian.Uint32(raw)
	if value > MaxUInt31 {
		return 0, malformed("uint31 has high bit set")
	}
	return int(value), nil
}

// WriteUInt24 writes value as exactly 3 big-endian bytes.
func (b *Buffer) WriteUInt24(value int) error {
	if value < 0 || value > MaxUInt24 {
		return &RangeError{Op: "WriteUInt24", Value: int64(value), Max: MaxUInt24}
	}
	out := b.grow(3)
	out[0] = byte(value >> 16)
	out[1] = byte(value >> 8)
	out[2] = byte(value)
	return nil
}

// ReadUInt24 reads 3 big-endian bytes written by [Buffer.WriteUInt24].
func (b *Buffer) ReadUInt24() (int, error) {
	raw, err := b.next(3)
	if err != nil {
		return 0, err
	}
	return int(raw[0])<<16 | int(raw[1])<<8 | int(raw[2]), nil
}

// WriteInteger writes a signed integer of any magnitude: a header byte
// holding the sign (bit 7) and the number of magnitude bytes (bits
// 0–4), then the magnitude in little-endian order. Zero has no
// magnitude bytes.
func (b *Buffer) WriteInteger(value int64) {
	var header byte
	magnitude := uint64(value)
	if value < 0 {
		header = integerSignBit
		magnitude = -magnitude
	}
	count := (bits.Len64(magnitude) + 7) / 8
	out := b.grow(1 + count)
	out[0] = header | byte(count)
	for i := 1; i <= count; i++ {
		out[i] = byte(magnitude)
		magnitude >>= 8
	}
}

// ReadInteger reads a signed integer written by [Buffer.WriteInteger].
func (b *Buffer) ReadInteger() (int64, error) {
	header, err := b.ReadByte()
	if err != nil {
		return 0, err
	}
	if header&integerReserved != 0 {
		return 0, malformed("integer header 0x%02x has reserved bits set", header)
	}
	count := int(header & integerCountMask)
	if count > 8 {
		return 0, malformed("integer magnitude of %d bytes", count)
	}
	raw, err := b.next(count)
	if err != nil {
		return 0, err
	}
	var magnitude uint64
	for i := count - 1; i >= 0; i-- {
		magnitude = magnitude<<8 | uint64(raw[i])
	}
	if header&integerSignBit != 0 {
		if magnitude > 1<<63 {
			return 0, malformed("integer magnitude overflows int64")
		}
		return int64(-magnitude), nil
	}
	if magnitude > math.MaxInt64 {
		return 0, malformed("integer magnitude overflows int64")
	}
	return int64(magnitude), nil
}

// WriteByteArray writes a varint length followed by the raw bytes.
func (b *Buffer) WriteByteArray(data []byte) error {
	if err := b.WriteSmallNonNegativeInteger(len(data)); err != nil {
		return err
	}
	copy(b.grow(len(data)), data)
	return nil
}

// WriteFixedByteArray writes the raw bytes with no length prefix. The
// reader must learn the length out of band and call
// [Buffer.ReadFixedByteArray] with it; a digest of known size is the
// typical case.
func (b *Buffer) WriteFixedByteArray(data []byte) {
	copy(b.grow(len(data)), data)
}

// ReadByteArray reads a length-prefixed byte array. The result is a
// copy owned by the caller.
func (b *Buffer) ReadByteArray() ([]byte, error) {
	length, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return nil, err
	}
	return b.ReadFixedByteArray(length)
}

// ReadFixedByteArray reads exactly length bytes written without a
// prefix. The result is a copy owned by the caller.
func (b *Buffer) ReadFixedByteArray(length int) ([]byte, error) {
	raw, err := b.next(length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, raw)
	return out, nil
}

// WriteString writes s as a varint count of UTF-16 code units followed
// by one varint per code unit. Runes outside the Basic Multilingual
// Plane become surrogate pairs; invalid UTF-8 becomes U+FFFD.
func (b *Buffer) WriteString(s string) error {
	return b.writeCodeUnits(utf16.Encode([]rune(s)))
}

func (b *Buffer) writeCodeUnits(units []uint16) error {
	if err := b.WriteSmallNonNegativeInteger(len(units)); err != nil {
		return err
	}
	for _, unit := range units {
		b.putVarint(uint32(unit))
	}
	return nil
}

// ReadString reads a string written by [Buffer.WriteString]. Unpaired
// surrogates decode as U+FFFD.
func (b *Buffer) ReadString() (string, error) {
	count, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return "", err
	}
	// Every code unit takes at least one byte.
	if count > b.Remaining() {
		return "", ErrUnexpectedEnd
	}
	units := make([]uint16, count)
	for i := range units {
		unit, err := b.readCodeUnit()
		if err != nil {
			return "", err
		}
		units[i] = unit
	}
	return string(utf16.Decode(units)), nil
}

func (b *Buffer) readCodeUnit() (uint16, error) {
	value, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return 0, err
	}
	if value > 0xffff {
		return 0, malformed("code unit 0x%x exceeds 16 bits", value)
	}
	return uint16(value), nil
}

// WriteJSON writes the JSON encoding of value as a string. It is the
// fallback for values not worth a bit-exact encoding of their own.
func (b *Buffer) WriteJSON(value any) error {
	text, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("wire: WriteJSON: %w", err)
	}
	return b.WriteString(string(text))
}

// ReadJSON reads a string written by [Buffer.WriteJSON] and decodes it
// into target, which must be a pointer.
func (b *Buffer) ReadJSON(target any) error {
	text, err := b.ReadString()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), target); err != nil {
		return fmt.Errorf("%w: json payload: %v", ErrMalformed, err)
	}
	return nil
}

// utf16Length returns the number of UTF-16 code units WriteString
// would emit for s, without allocating.
func utf16Length(s string) int {
	count := 0
	for _, r := range s {
		if r >= 0x10000 {
			count += 2
		} else {
			count++
		}
	}
	return count
}
