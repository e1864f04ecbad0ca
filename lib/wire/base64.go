// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/base64"
	"fmt"
)

// ToBase64 returns the written bytes as standard, padded Base64, for
// carrying a stream through text-only channels such as JSON fields.
func (b *Buffer) ToBase64() string {
	return base64.StdEncoding.EncodeToString(b.View())
}

// FromBase64 decodes text produced by [Buffer.ToBase64] into a new
// buffer positioned for reading. The decoded bytes are handed to the
// buffer without a further copy.
func FromBase64(text string) (*Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("wire: decode base64: %w", err)
	}
	return FromBytes(data), nil
}
