// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// tokenTable interns strings for one write pass and one read pass.
// IDs are assigned sequentially in first-seen order, so the read side
// rebuilds the same table by appending each string the first time its
// ID appears.
type tokenTable struct {
	written map[string]int
	read    []string
}

func (t *tokenTable) reset() {
	clear(t.written)
	t.read = t.read[:0]
}

// WriteToken writes s as an interned token. The first time s is
// written in the current pass, its new ID is followed by the string
// itself; afterwards only the ID is written.
func (b *Buffer) WriteToken(s string) error {
	if id, ok := b.tokens.written[s]; ok {
		return b.WriteSmallNonNegativeInteger(id)
	}
	if b.tokens.written == nil {
		b.tokens.written = make(map[string]int)
	}
	id := len(b.tokens.written)
	if err := b.WriteSmallNonNegativeInteger(id); err != nil {
		return err
	}
	if err := b.WriteString(s); err != nil {
		return err
	}
	b.tokens.written[s] = id
	return nil
}

// ReadToken reads a token written by [Buffer.WriteToken]. Tokens must
// be read in the order they were written: the stream does not say
// which string an ID stands for except at its first occurrence.
func (b *Buffer) ReadToken() (string, error) {
	id, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return "", err
	}
	switch {
	case id < len(b.tokens.read):
		return b.tokens.read[id], nil
	case id == len(b.tokens.read):
		s, err := b.ReadString()
		if err != nil {
			return "", err
		}
		b.tokens.read = append(b.tokens.read, s)
		return s, nil
	default:
		return "", malformed("token ID %d skips ahead of %d known tokens", id, len(b.tokens.read))
	}
}
