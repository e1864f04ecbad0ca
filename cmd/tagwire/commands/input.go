// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/binhash"
	"github.com/bureau-foundation/tagwire/lib/config"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// inputParams select the transport form of an encoded stream. Either
// overrides input.format from the configuration.
type inputParams struct {
	Hex    bool `flag:"hex,x"    desc:"input is hex-encoded (whitespace ignored)"`
	Base64 bool `flag:"base64,b" desc:"input is standard padded Base64"`
}

// format resolves the effective input format.
func (p *inputParams) format(cfg *config.Config) (string, error) {
	switch {
	case p.Hex && p.Base64:
		return "", cli.Validation("--hex and --base64 are mutually exclusive")
	case p.Hex:
		return config.FormatHex, nil
	case p.Base64:
		return config.FormatBase64, nil
	}
	return cfg.Input.Format, nil
}

// readSource reads the optional file argument, or stdin when args is
// empty.
func (env *environment) readSource(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(env.stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0])
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("read %s: %w", args[0], err)
		}
		if err != nil {
			return nil, cli.Internal("read %s: %w", args[0], err)
		}
		return data, nil
	}
	return nil, cli.Validation("expected at most one file argument, got %d", len(args))
}

// readStream reads an encoded stream in the given transport form and
// returns a buffer positioned at its first value. The buffer knows
// how to decode registered digests.
func (env *environment) readStream(args []string, format string) (*wire.Buffer, error) {
	data, err := env.readSource(args)
	if err != nil {
		return nil, err
	}

	var buffer *wire.Buffer
	switch format {
	case config.FormatHex:
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		buffer = wire.FromBytes(decoded)
	case config.FormatBase64:
		buffer, err = wire.FromBase64(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
	default:
		buffer = wire.FromBytes(data)
	}

	binhash.Register(buffer)
	return buffer, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "0d 02 61 62" or "0d026162").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// decodeValues reads every value remaining in buffer.
func decodeValues(buffer *wire.Buffer) ([]wire.Value, error) {
	if buffer.Remaining() == 0 {
		return nil, cli.Validation("empty input: expected an encoded stream")
	}
	var values []wire.Value
	for buffer.Remaining() > 0 {
		offset := buffer.Offset()
		value, err := buffer.ReadSerializable()
		if err != nil {
			return nil, cli.Validation("value %d at offset %d: %w", len(values), offset, err)
		}
		values = append(values, value)
	}
	return values, nil
}
