// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/codec"
)

type cborParams struct {
	inputParams
	Diag bool `flag:"diag,d" desc:"print CBOR diagnostic notation instead of binary"`
}

func cborCommand(env *environment) *cli.Command {
	var params cborParams

	return &cli.Command{
		Name:    "cbor",
		Summary: "Re-encode a tagged stream as deterministic CBOR",
		Description: `Decode a tagged stream and write each value as CBOR with Core
Deterministic Encoding (RFC 8949 §4.2), producing a CBOR sequence.

Undefined values and array holes become the CBOR undefined simple
value, dates become tag 1 (epoch seconds), and sets become tag 258.
Object keys are sorted by the deterministic encoding.

With --diag, print the RFC 8949 diagnostic notation of each value on its
own line instead of binary output.`,
		Usage: "tagwire cbor [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Convert a stream to a CBOR sequence",
				Command:     "tagwire cbor value.bin > value.cbor",
			},
			{
				Description: "Show the CBOR form of each value",
				Command:     "tagwire cbor --diag value.bin",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("cbor", &params)
		},
		Run: func(args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			format, err := params.format(cfg)
			if err != nil {
				return err
			}
			buffer, err := env.readStream(args, format)
			if err != nil {
				return err
			}
			values, err := decodeValues(buffer)
			if err != nil {
				return err
			}
			env.logger(cfg, "cbor").Info("converting stream", "values", len(values), "bytes", buffer.Len())

			if params.Diag {
				for index, value := range values {
					data, err := codec.MarshalValue(value)
					if err != nil {
						return cli.Internal("value %d: %w", index, err)
					}
					notation, err := codec.Diagnose(data)
					if err != nil {
						return cli.Internal("value %d: diagnose CBOR: %w", index, err)
					}
					if _, err := fmt.Fprintln(env.stdout, notation); err != nil {
						return cli.Internal("write output: %w", err)
					}
				}
				return nil
			}

			encoder := codec.NewEncoder(env.stdout)
			for index, value := range values {
				tree, err := codec.ToCBOR(value)
				if err != nil {
					return cli.Internal("value %d: %w", index, err)
				}
				if err := encoder.Encode(tree); err != nil {
					return cli.Internal("value %d: encode CBOR: %w", index, err)
				}
			}
			return nil
		},
	}
}
