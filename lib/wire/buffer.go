// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// DefaultCapacity is the initial capacity of a buffer created by [New].
const DefaultCapacity = 64

// Buffer is a growable byte array with a single cursor shared by
// reads and writes. Writes advance the cursor and end the written
// extent there, dropping anything previously written beyond it; reads
// advance the cursor and never pass the written extent.
//
// The zero value is an empty buffer ready for writing.
type Buffer struct {
	// data is the backing array. len(data) is the capacity; bytes at
	// or beyond length are scratch space.
	data []byte

	// offset is the cursor.
	offset int

	// length is the end of the written bytes. Every write sets it to
	// the cursor. Reads stop here.
	length int

	// depth is the container nesting at which a registered
	// unserializer runs, so values it reads count toward MaxDepth.
	depth int

	tokens      tokenTable
	serializers registry
}

// New returns an empty buffer with [DefaultCapacity] bytes reserved.
func New() *Buffer {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity returns an empty buffer with capacity bytes reserved.
// A non-positive capacity defers allocation to the first write.
func NewWithCapacity(capacity int) *Buffer {
	if capacity <= 0 {
		return &Buffer{}
	}
	return &Buffer{data: make([]byte, capacity)}
}

// FromBytes returns a buffer positioned at the start of data, ready to
// read it. The buffer takes ownership of data without copying: the
// caller must not modify data afterwards. Writing to the returned
// buffer overwrites data in place until it has to grow, and truncates
// the readable extent at the cursor.
func FromBytes(data []byte) *Buffer {
	return &Buffer{data: data, length: len(data)}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.length }

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int { return len(b.data) }

// Offset returns the cursor position.
func (b *Buffer) Offset() int { return b.offset }

// Remaining returns the number of written bytes after the cursor.
func (b *Buffer) Remaining() int { return b.length - b.offset }

// Bytes returns a copy of the written bytes. The copy is unaffected by
// later writes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.length)
	copy(out, b.data[:b.length])
	return out
}

// View returns the written bytes without copying. The slice aliases
// the buffer's backing array: any later write may overwrite it, and a
// write that grows the buffer detaches it from the buffer entirely.
// Use View only when the bytes are consumed before the next write.
func (b *Buffer) View() []byte {
	return b.data[:b.length:b.length]
}

// Rewind moves the cursor to the start and clears the token table so
// the buffer can read back what it wrote. The written bytes and the
// serializer registry are kept; a subsequent write replaces the bytes
// instead of appending to them.
func (b *Buffer) Rewind() {
	b.offset = 0
	b.tokens.reset()
}

// Reset empties the buffer for reuse, keeping its capacity and its
// serializer registry.
func (b *Buffer) Reset() {
	b.offset = 0
	b.length = 0
	b.tokens.reset()
}

// ensureCapacity makes room for extra bytes at the cursor. When the
// backing array is too small it is replaced by one of
// max(capacity*2, needed*1.5) bytes, which keeps the total copying
// cost of many small writes linear.
func (b *Buffer) ensureCapacity(extra int) {
	needed := b.offset + extra
	if needed <= len(b.data) {
		return
	}
	grown := make([]byte, max(len(b.data)*2, needed+needed/2))
	copy(grown, b.data[:b.length])
	b.data = grown
}

// grow reserves n bytes at the cursor, advances past them, and returns
// them for the caller to fill.
func (b *Buffer) grow(n int) []byte {
	b.ensureCapacity(n)
	start := b.offset
	b.offset += n
	b.length = b.offset
	return b.data[start:b.offset]
}

// next consumes n written bytes at the cursor. The returned slice
// aliases the buffer.
func (b *Buffer) next(n int) ([]byte, error) {
	if n < 0 || n > b.length-b.offset {
		return nil, ErrUnexpectedEnd
	}
	start := b.offset
	b.offset += n
	return b.data[start:b.offset], nil
}

// WriteByte appends one byte at the cursor. It never fails; the error
// result satisfies [io.ByteWriter].
func (b *Buffer) WriteByte(c byte) error {
	b.grow(1)[0] = c
	return nil
}

// ReadByte consumes one byte at the cursor.
func (b *Buffer) ReadByte() (byte, error) {
	if b.offset >= b.length {
		return 0, ErrUnexpectedEnd
	}
	c := b.data[b.offset]
	b.offset++
	return c, nil
}
