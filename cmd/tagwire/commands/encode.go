// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/binhash"
	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

type encodeParams struct {
	Hex      bool `flag:"hex,x"    desc:"write the stream as hex text"`
	Base64   bool `flag:"base64,b" desc:"write the stream as standard padded Base64 text"`
	Capacity int  `flag:"capacity" desc:"initial buffer capacity in bytes (default from config)"`
}

func encodeCommand(env *environment) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to a tagged binary stream",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
tagged stream to stdout.

The input may hold several top-level JSON values; each becomes one value
of the stream, in order. Comments (// and /* */) and trailing commas are
accepted.

Marker objects produce the variants JSON cannot express:
{"$undefined": true}, {"$hole": true}, {"$number": "NaN"},
{"$date": <epoch ms>} and {"$set": [...]}. Object key order is preserved.

The output is binary unless --hex or --base64 is given.`,
		Usage: "tagwire encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode a JSON document",
				Command:     `echo '{"id": 7, "tags": {"$set": ["a", "b"]}}' | tagwire encode > value.bin`,
			},
			{
				Description: "Encode for a text transport",
				Command:     "tagwire encode --base64 input.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			if params.Hex && params.Base64 {
				return cli.Validation("--hex and --base64 are mutually exclusive")
			}
			capacity := cfg.Buffer.InitialCapacity
			if params.Capacity != 0 {
				capacity = params.Capacity
			}
			if capacity <= 0 {
				return cli.Validation("--capacity must be positive, got %d", capacity)
			}

			data, err := env.readSource(args)
			if err != nil {
				return err
			}

			logger := env.logger(cfg, "encode")
			buffer := wire.NewWithCapacity(capacity)
			count, err := encodeJSON(data, buffer)
			if err != nil {
				return err
			}
			logger.Info("encoded stream",
				"values", count,
				"bytes", buffer.Len(),
				"digest", binhash.Sum(buffer.View()).String(),
			)
			return writeStream(env.stdout, buffer, params)
		},
	}
}

// encodeJSON parses JSON data and writes each top-level value to
// buffer. Returns the number of values written.
func encodeJSON(data []byte, buffer *wire.Buffer) (int, error) {
	values, err := codec.FromJSON(data)
	if err != nil {
		if errors.Is(err, codec.ErrRegisteredImport) {
			return 0, cli.Validation("%w", err)
		}
		return 0, cli.Validation("parse JSON: %w", err)
	}
	if len(values) == 0 {
		return 0, cli.Validation("empty input: expected JSON data")
	}
	for index, value := range values {
		if err := buffer.WriteSerializable(value); err != nil {
			return 0, cli.Validation("encode value %d: %w", index, err)
		}
	}
	return len(values), nil
}

// writeStream writes the buffer's bytes in the requested form. Text
// forms end with a newline.
func writeStream(w io.Writer, buffer *wire.Buffer, params encodeParams) error {
	var err error
	switch {
	case params.Base64:
		_, err = fmt.Fprintln(w, buffer.ToBase64())
	case params.Hex:
		_, err = fmt.Fprintln(w, hex.EncodeToString(buffer.View()))
	default:
		_, err = w.Write(buffer.View())
	}
	if err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}
