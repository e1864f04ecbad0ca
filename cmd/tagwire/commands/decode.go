// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

type decodeParams struct {
	inputParams
	outputParams
	Slurp bool `flag:"slurp,s" desc:"collect all values into one JSON array"`
}

func decodeCommand(env *environment) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a tagged binary stream to JSON",
		Description: `Read a tagged stream from stdin (or a file argument) and write each
value as JSON on stdout, one document per value.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output, and -s to collect every value of the
stream into a single JSON array.

Variants JSON cannot express are written as marker objects
({"$undefined": true}, {"$date": <ms>}, {"$set": [...]}, ...), so the
output of decode is valid input for encode. Registered values appear as
{"$registered": "<type>", "$object": ...}; only registered BLAKE3
digests can be decoded by this tool.

Output is colourised when stdout is a terminal (see --color).`,
		Usage: "tagwire decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a stream file",
				Command:     "tagwire decode value.bin",
			},
			{
				Description: "Decode Base64 text as one compact array",
				Command:     "tagwire decode --base64 -c -s payload.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
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
			writer, err := env.newJSONWriter(&params.outputParams, cfg)
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
			env.logger(cfg, "decode").Info("decoded stream",
				"format", format,
				"values", len(values),
				"bytes", buffer.Len(),
			)

			if params.Slurp {
				return writer.write(wire.Array(values))
			}
			for _, value := range values {
				if err := writer.write(value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
