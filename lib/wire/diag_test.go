// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"strings"
	"testing"
)

func TestDiagnose(t *testing.T) {
	encoded, err := Marshal(
		Array{Null{}, Str("a"), Str("ab"), Hole{}, Float(3.5), Int(1000), Int(-5), Int(7)},
		NewSet(Str(""), Date(12)),
		Array{NewObject("id", Int(1)), NewObject("id", Int(2))},
	)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := Diagnose(encoded)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`[null, 'a', "ab", hole, json(3.5), uint(1000), int(-5), 7]`,
		`set["", date(12)]`,
		`[{#0="id": 1}, {#0: 2}]`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %s, want %s", i, lines[i], want[i])
		}
	}
}

func TestDiagnoseRegistered(t *testing.T) {
	buffer := New()
	Register(buffer, "point", writePoint, readPoint)
	buffer.WriteSerializable(Custom("point", point{X: 1, Y: 2, Label: "p"}))
	buffer.Rewind()
	line, err := buffer.DiagnoseNext()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(line, `registered(#0="point" {X:1 Y:2`) {
		t.Errorf("line = %s", line)
	}

	_, err = Diagnose(buffer.Bytes())
	var missing *MissingSerializerError
	if !errors.As(err, &missing) {
		t.Errorf("Diagnose without serializer: err = %v", err)
	}
}

func TestDiagnoseUnknownTag(t *testing.T) {
	_, err := Diagnose([]byte{byte(TagNull), 20})
	var unknown *UnknownTagError
	if !errors.As(err, &unknown) || unknown.Offset != 1 {
		t.Errorf("err = %v, want *UnknownTagError at offset 1", err)
	}
}

func TestTagNames(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagNull, "null"},
		{TagRegistered, "registered"},
		{TagSmallIntBase + 5, "small-int(5)"},
		{Tag(20), "tag(0x14)"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("Tag(%d).String() = %q, want %q", byte(tt.tag), got, tt.want)
		}
	}
}
