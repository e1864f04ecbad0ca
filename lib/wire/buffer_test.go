// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferGrowthPolicy(t *testing.T) {
	buffer := NewWithCapacity(4)
	for i := range 4 {
		buffer.WriteByte(byte(i))
	}
	if buffer.Cap() != 4 {
		t.Fatalf("capacity after filling = %d, want 4", buffer.Cap())
	}

	// One more byte: needed = 5, doubling gives 8, 1.5x gives 7.
	buffer.WriteByte(4)
	if buffer.Cap() != 8 {
		t.Errorf("capacity after first growth = %d, want 8", buffer.Cap())
	}

	// A large write outruns doubling: needed = 5+100, 1.5x = 157.
	buffer.WriteFixedByteArray(make([]byte, 100))
	if buffer.Cap() != 157 {
		t.Errorf("capacity after large write = %d, want 157", buffer.Cap())
	}
	if buffer.Len() != 105 {
		t.Errorf("Len = %d, want 105", buffer.Len())
	}
}

func TestBufferGrowthPreservesPrefix(t *testing.T) {
	buffer := NewWithCapacity(1)
	var want []byte
	for i := range 1000 {
		buffer.WriteByte(byte(i % 251))
		want = append(want, byte(i%251))
	}
	if !bytes.Equal(buffer.Bytes(), want) {
		t.Fatal("bytes changed across growth")
	}
	if buffer.Cap() < buffer.Len() {
		t.Errorf("capacity %d below length %d", buffer.Cap(), buffer.Len())
	}
}

func TestZeroValueBufferIsUsable(t *testing.T) {
	var buffer Buffer
	if err := buffer.WriteSmallNonNegativeInteger(300); err != nil {
		t.Fatalf("WriteSmallNonNegativeInteger: %v", err)
	}
	buffer.Rewind()
	got, err := buffer.ReadSmallNonNegativeInteger()
	if err != nil {
		t.Fatalf("ReadSmallNonNegativeInteger: %v", err)
	}
	if got != 300 {
		t.Errorf("got %d, want 300", got)
	}
}

func TestFromBytesDoesNotCopy(t *testing.T) {
	data := []byte{1, 2, 3}
	buffer := FromBytes(data)
	// Overwrite in place: the first byte of the caller's slice changes.
	buffer.WriteByte(9)
	if data[0] != 9 {
		t.Errorf("data[0] = %d, want 9 (buffer should alias the input)", data[0])
	}
	if buffer.Len() != 1 {
		t.Errorf("Len = %d, want 1 (a write ends the readable extent)", buffer.Len())
	}
}

func TestBytesIsOwnedCopy(t *testing.T) {
	buffer := New()
	buffer.WriteByte(1)
	exported := buffer.Bytes()
	buffer.Rewind()
	buffer.WriteByte(2)
	if exported[0] != 1 {
		t.Errorf("exported copy changed to %d after a later write", exported[0])
	}
}

func TestViewAliasesUntilGrowth(t *testing.T) {
	buffer := NewWithCapacity(2)
	buffer.WriteByte(1)
	view := buffer.View()
	buffer.Rewind()
	buffer.WriteByte(7)
	if view[0] != 7 {
		t.Errorf("view[0] = %d, want 7 (view should alias the buffer)", view[0])
	}
	if cap(view) != len(view) {
		t.Errorf("view has spare capacity %d; appending would write into the buffer", cap(view)-len(view))
	}
}

func TestReadPastEnd(t *testing.T) {
	buffer := FromBytes([]byte{0x80})
	if _, err := buffer.ReadSmallNonNegativeInteger(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("truncated varint: err = %v, want ErrUnexpectedEnd", err)
	}

	empty := New()
	if _, err := empty.ReadByte(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("empty buffer: err = %v, want ErrUnexpectedEnd", err)
	}
}

func TestRewindKeepsWrittenExtent(t *testing.T) {
	buffer := New()
	buffer.WriteFixedByteArray([]byte{1, 2, 3, 4})
	buffer.Rewind()
	if buffer.Offset() != 0 {
		t.Errorf("Offset after Rewind = %d, want 0", buffer.Offset())
	}
	if buffer.Remaining() != 4 {
		t.Errorf("Remaining after Rewind = %d, want 4", buffer.Remaining())
	}
	if got := buffer.Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("Bytes after Rewind = %v", got)
	}
}

func TestWriteAfterRewindTruncates(t *testing.T) {
	buffer := New()
	if err := buffer.WriteSerializable(Str("hello world")); err != nil {
		t.Fatalf("WriteSerializable: %v", err)
	}
	buffer.Rewind()
	if err := buffer.WriteSerializable(Int(7)); err != nil {
		t.Fatalf("WriteSerializable: %v", err)
	}
	if got := buffer.Bytes(); !bytes.Equal(got, []byte{0x27}) {
		t.Errorf("Bytes = %x, want 27", got)
	}
	if got := buffer.View(); !bytes.Equal(got, []byte{0x27}) {
		t.Errorf("View = %x, want 27", got)
	}
	if got := buffer.ToBase64(); got != "Jw==" {
		t.Errorf("ToBase64 = %q, want %q", got, "Jw==")
	}

	buffer.Rewind()
	var values []Value
	for buffer.Remaining() > 0 {
		value, err := buffer.ReadSerializable()
		if err != nil {
			t.Fatalf("ReadSerializable: %v", err)
		}
		values = append(values, value)
	}
	if len(values) != 1 || !Equal(values[0], Int(7)) {
		t.Errorf("read back %v, want [7]", values)
	}
}

func TestResetEmptiesBuffer(t *testing.T) {
	buffer := New()
	Register(buffer, "point", writePoint, readPoint)
	buffer.WriteFixedByteArray([]byte{1, 2, 3})
	capacity := buffer.Cap()

	buffer.Reset()
	if buffer.Len() != 0 || buffer.Offset() != 0 {
		t.Errorf("after Reset: Len = %d, Offset = %d, want 0, 0", buffer.Len(), buffer.Offset())
	}
	if buffer.Cap() != capacity {
		t.Errorf("Reset changed capacity from %d to %d", capacity, buffer.Cap())
	}
	if !buffer.HasSerializer("point") {
		t.Error("Reset dropped the serializer registry")
	}
}
