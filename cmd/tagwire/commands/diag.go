// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
)

type diagParams struct {
	inputParams
	Offsets bool `flag:"offsets" desc:"prefix each line with the value's byte offset"`
}

func diagCommand(env *environment) *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show the wire-level structure of a tagged stream",
		Description: `Read a tagged stream and print one line per value in a notation that
keeps the distinctions JSON output hides: which integer encoding was
used, one-character versus longer strings, sets versus arrays, and
object keys as token table entries.

Notation:
  7              inline small integer (tags 32..255)
  uint(300)      varint integer
  int(-5)        signed integer
  json(1.5)      number carried as JSON text
  'a' "" "ab"    one-character, empty and longer strings
  date(ms)       date in epoch milliseconds
  set[...]       set in insertion order
  {#0="id": 1}   object; #N is the token id, the string appears on first use
  registered(#0="binhash.digest" ...)

Decoding stops at the first malformed value, after printing the values
before it.`,
		Usage: "tagwire diag [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a stream with byte offsets",
				Command:     "tagwire diag --offsets value.bin",
			},
			{
				Description: "Inspect hex pasted from a log",
				Command:     "echo '0d 02 61 62' | tagwire diag --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
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
			if buffer.Remaining() == 0 {
				return cli.Validation("empty input: expected an encoded stream")
			}

			count := 0
			for buffer.Remaining() > 0 {
				offset := buffer.Offset()
				line, err := buffer.DiagnoseNext()
				if err != nil {
					return cli.Validation("value %d at offset %d: %w", count, offset, err)
				}
				if params.Offsets {
					_, err = fmt.Fprintf(env.stdout, "%6d  %s\n", offset, line)
				} else {
					_, err = fmt.Fprintln(env.stdout, line)
				}
				if err != nil {
					return cli.Internal("write output: %w", err)
				}
				count++
			}
			env.logger(cfg, "diag").Debug("diagnosed stream", "values", count, "bytes", buffer.Len())
			return nil
		},
	}
}
