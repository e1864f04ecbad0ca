// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Full bool `flag:"full" desc:"include Go version, platform and wire format"`
}

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Dirty      bool   `json:"dirty"`
	BuildTime  string `json:"build_time"`
	WireFormat int    `json:"wire_format"`
}

func versionCommand(env *environment) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print build version information",
		Usage:   "tagwire version [--full] [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			info := versionInfo{
				Version:    version.Short(),
				Commit:     version.GitCommit,
				Dirty:      version.GitDirty == "true",
				BuildTime:  version.BuildTime,
				WireFormat: version.WireFormat,
			}
			if done, err := params.EmitJSON(env.stdout, info); done {
				return err
			}

			text := version.Info()
			if params.Full {
				text = version.Full()
			}
			_, err := fmt.Fprintln(env.stdout, text)
			return err
		},
	}
}
