// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// DiagnoseNext reads one value at the cursor and returns a notation
// for it that preserves the distinctions the decoded [Value] loses:
// which integer encoding was used, which strings took a compact tag,
// and where each token was defined or reused.
//
//	42                  inline integer (tag byte only)
//	uint(1000)          unsigned varint
//	int(-5)             signed integer
//	json(3.5)           JSON fallback
//	'a' ""              one-character and empty string tags
//	{#0="id": 1, #0: 2} token 0 defined, then reused
//	set[1, 2]           set in stored order
//
// Registered payloads are decoded with the buffer's serializers and
// printed with %+v.
func (b *Buffer) DiagnoseNext() (string, error) {
	var out strings.Builder
	if err := b.diagnoseValue(&out, b.depth); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Diagnose returns the notation of every top-level value in data, one
// string per value. Streams containing registered values need a buffer
// with serializers; use [Buffer.DiagnoseNext] for those.
func Diagnose(data []byte) ([]string, error) {
	buffer := FromBytes(data)
	var lines []string
	for buffer.Remaining() > 0 {
		offset := buffer.Offset()
		line, err := buffer.DiagnoseNext()
		if err != nil {
			return lines, fmt.Errorf("value %d at offset %d: %w", len(lines), offset, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (b *Buffer) diagnoseValue(out *strings.Builder, depth int) error {
	if depth > MaxDepth {
		return malformed("nesting deeper than %d", MaxDepth)
	}
	offset := b.offset
	raw, err := b.ReadByte()
	if err != nil {
		return err
	}
	tag := Tag(raw)
	if tag >= TagSmallIntBase {
		out.WriteString(strconv.Itoa(int(tag - TagSmallIntBase)))
		return nil
	}
	switch tag {
	case TagNull, TagFalse, TagTrue, TagUndefined, TagPositiveInfinity, TagNegativeInfinity, TagNaN, TagHole:
		out.WriteString(tag.String())
	case TagSmallPositiveInt:
		n, err := b.ReadSmallNonNegativeInteger()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "uint(%d)", n)
	case TagInteger:
		n, err := b.ReadInteger()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "int(%d)", n)
	case TagJSON:
		text, err := b.ReadString()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "json(%s)", text)
	case TagEmptyString:
		out.WriteString(`""`)
	case TagOneCharString:
		unit, err := b.readCodeUnit()
		if err != nil {
			return err
		}
		out.WriteString(strconv.QuoteRune(rune(unit)))
	case TagString:
		s, err := b.ReadString()
		if err != nil {
			return err
		}
		out.WriteString(strconv.Quote(s))
	case TagDate:
		ms, err := b.ReadInteger()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "date(%d)", ms)
	case TagArray, TagSet:
		if tag == TagSet {
			out.WriteString("set")
		}
		return b.diagnoseElements(out, depth)
	case TagObject:
		return b.diagnoseObject(out, depth)
	case TagRegistered:
		out.WriteString("registered(")
		name, err := b.diagnoseToken(out)
		if err != nil {
			return err
		}
		entry, ok := b.serializers[name]
		if !ok {
			return &MissingSerializerError{Type: name}
		}
		object, err := b.unserializeAt(entry, name, depth)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, " %+v)", object)
	default:
		return &UnknownTagError{Tag: raw, Offset: offset}
	}
	return nil
}

func (b *Buffer) diagnoseElements(out *strings.Builder, depth int) error {
	count, err := b.readCount()
	if err != nil {
		return err
	}
	out.WriteByte('[')
	for i := range count {
		if i > 0 {
			out.WriteString(", ")
		}
		if err := b.diagnoseValue(out, depth+1); err != nil {
			return err
		}
	}
	out.WriteByte(']')
	return nil
}

func (b *Buffer) diagnoseObject(out *strings.Builder, depth int) error {
	count, err := b.readCount()
	if err != nil {
		return err
	}
	out.WriteByte('{')
	for i := range count {
		if i > 0 {
			out.WriteString(", ")
		}
		if _, err := b.diagnoseToken(out); err != nil {
			return err
		}
		out.WriteString(": ")
		if err := b.diagnoseValue(out, depth+1); err != nil {
			return err
		}
	}
	out.WriteByte('}')
	return nil
}

// diagnoseToken reads a token and writes #ID, or #ID="text" where the
// token is defined.
func (b *Buffer) diagnoseToken(out *strings.Builder) (string, error) {
	start := b.offset
	id, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return "", err
	}
	b.offset = start
	defined := id == len(b.tokens.read)
	s, err := b.ReadToken()
	if err != nil {
		return "", err
	}
	if defined {
		fmt.Fprintf(out, "#%d=%s", id, strconv.Quote(s))
	} else {
		fmt.Fprintf(out, "#%d", id)
	}
	return s, nil
}
