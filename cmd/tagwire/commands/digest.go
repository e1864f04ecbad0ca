// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/binhash"
)

type digestParams struct {
	inputParams
	Verify string `flag:"verify" desc:"expected hex digest; exit 1 on mismatch"`
}

func digestCommand(env *environment) *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the BLAKE3 digest of a tagged stream",
		Description: `Compute the BLAKE3-256 digest of the stream bytes. With --hex or
--base64 the text is decoded first, so the digest identifies the stream
regardless of transport. The stream is not parsed.

With --verify, compare against an expected digest instead: prints "OK"
and exits 0 on a match, prints both digests and exits 1 otherwise.`,
		Usage: "tagwire digest [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Digest a stream file",
				Command:     "tagwire digest value.bin",
			},
			{
				Description: "Check a Base64 payload against a known digest",
				Command:     "tagwire digest --base64 --verify af1349b9... payload.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("digest", &params)
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

			var expected binhash.Digest
			if params.Verify != "" {
				expected, err = binhash.Parse(params.Verify)
				if err != nil {
					return cli.Validation("--verify: %w", err)
				}
			}

			buffer, err := env.readStream(args, format)
			if err != nil {
				return err
			}
			digest := binhash.Sum(buffer.View())
			env.logger(cfg, "digest").Debug("digested stream", "bytes", buffer.Len(), "digest", digest.String())

			if params.Verify == "" {
				_, err = fmt.Fprintln(env.stdout, digest)
			} else if digest == expected {
				_, err = fmt.Fprintln(env.stdout, "OK")
			} else {
				if _, err := fmt.Fprintf(env.stdout, "MISMATCH\n  got:  %s\n  want: %s\n", digest, expected); err != nil {
					return cli.Internal("write output: %w", err)
				}
				return &cli.ExitError{Code: 1}
			}
			if err != nil {
				return cli.Internal("write output: %w", err)
			}
			return nil
		},
	}
}
