// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"testing"
)

func TestTokenRepeatIsShorter(t *testing.T) {
	buffer := New()
	if err := buffer.WriteToken("foo"); err != nil {
		t.Fatal(err)
	}
	first := buffer.Len()
	if err := buffer.WriteToken("foo"); err != nil {
		t.Fatal(err)
	}
	second := buffer.Len() - first

	if second >= first {
		t.Errorf("second emission is %d bytes, first is %d; want strictly shorter", second, first)
	}
	if second != 1 {
		t.Errorf("second emission is %d bytes, want 1 (the ID alone)", second)
	}
}

func TestTokenRoundtripInOrder(t *testing.T) {
	sequence := []string{"id", "name", "id", "", "name", "kind", "id", "😀", "😀"}

	buffer := New()
	for _, token := range sequence {
		if err := buffer.WriteToken(token); err != nil {
			t.Fatalf("WriteToken(%q): %v", token, err)
		}
	}
	buffer.Rewind()
	for i, want := range sequence {
		got, err := buffer.ReadToken()
		if err != nil {
			t.Fatalf("ReadToken %d: %v", i, err)
		}
		if got != want {
			t.Errorf("token %d = %q, want %q", i, got, want)
		}
	}
}

func TestTokenIDsFollowFirstSeenOrder(t *testing.T) {
	buffer := New()
	for _, token := range []string{"b", "a", "b", "c"} {
		buffer.WriteToken(token)
	}
	want := map[string]int{"b": 0, "a": 1, "c": 2}
	for token, id := range want {
		if got := buffer.tokens.written[token]; got != id {
			t.Errorf("ID of %q = %d, want %d", token, got, id)
		}
	}
}

func TestTokenSkipAheadIsMalformed(t *testing.T) {
	// ID 1 before ID 0 has been seen.
	_, err := FromBytes([]byte{0x01, 0x01, 'x'}).ReadToken()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestRewindResetsTokenTable(t *testing.T) {
	buffer := New()
	buffer.WriteToken("alpha")
	buffer.Rewind()

	// After Rewind the write side starts a new pass: "alpha" is new
	// again and is written in full.
	buffer.WriteToken("alpha")
	buffer.Rewind()
	got, err := buffer.ReadToken()
	if err != nil || got != "alpha" {
		t.Fatalf("ReadToken = %q, %v", got, err)
	}

	// A second Rewind clears the read side too, so the definition is
	// read again rather than resolved from the cache.
	buffer.Rewind()
	got, err = buffer.ReadToken()
	if err != nil || got != "alpha" {
		t.Fatalf("ReadToken after second Rewind = %q, %v", got, err)
	}
}
