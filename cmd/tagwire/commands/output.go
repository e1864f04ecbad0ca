// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/config"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// outputParams control JSON rendering. Unset flags fall back to the
// output section of the configuration.
type outputParams struct {
	Compact bool   `flag:"compact,c" desc:"compact output (no indentation)"`
	Color   string `flag:"color"     desc:"highlight JSON: auto, always, never (default from config)"`
}

// jsonWriter renders values as JSON, one per line, optionally
// highlighted.
type jsonWriter struct {
	w         io.Writer
	compact   bool
	highlight bool
}

func (env *environment) newJSONWriter(params *outputParams, cfg *config.Config) (*jsonWriter, error) {
	color := cfg.Output.Color
	if params.Color != "" {
		color = params.Color
	}

	writer := &jsonWriter{w: env.stdout, compact: params.Compact || cfg.Output.Compact}
	switch color {
	case config.ColorAlways:
		writer.highlight = true
	case config.ColorAuto:
		writer.highlight = cli.IsTerminal(env.stdout)
	case config.ColorNever:
	default:
		return nil, cli.Validation("--color must be one of auto, always, never; got %q", color)
	}
	return writer, nil
}

func (j *jsonWriter) write(value wire.Value) error {
	text, err := codec.ToJSON(value, j.compact)
	if err != nil {
		return cli.Internal("render JSON: %w", err)
	}
	if j.highlight {
		if err := quick.Highlight(j.w, string(text)+"\n", "json", "terminal256", "monokai"); err != nil {
			return cli.Internal("highlight JSON: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(j.w, string(text)); err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}
