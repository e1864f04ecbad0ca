// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/config"
)

// globalParams are the flags accepted before the subcommand name.
type globalParams struct {
	ConfigPath string `flag:"config" desc:"path to tagwire.yaml (default: $TAGWIRE_CONFIG)"`
	LogLevel   string `flag:"log-level" desc:"override log.level: debug, info, warn, error"`
}

// environment carries the I/O streams and lazily loaded configuration
// shared by every subcommand of one invocation.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	globals globalParams
	loaded  *config.Config
}

// Root returns the top-level tagwire command bound to the process's
// standard streams.
func Root() *cli.Command {
	return newRoot(&environment{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	})
}

func newRoot(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "tagwire",
		Summary: "Encode, decode and inspect tagged binary streams",
		Description: `tagwire converts between JSON and the compact tagged binary format of
lib/wire, and inspects encoded streams.

A stream is a sequence of self-describing values. Each value starts with
a tag byte naming its variant; small integers, short strings and repeated
object keys have compact encodings.

Configuration is read from the file named by --config or the
TAGWIRE_CONFIG environment variable. Without either, built-in defaults
apply. Global flags must precede the command name.`,
		HelpOutput: env.stderr,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tagwire", &env.globals)
		},
		Subcommands: []*cli.Command{
			encodeCommand(env),
			decodeCommand(env),
			diagCommand(env),
			digestCommand(env),
			cborCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Encode JSON and decode it again",
				Command:     `echo '{"id": 1}' | tagwire encode | tagwire decode`,
			},
			{
				Description: "Inspect a Base64 stream",
				Command:     "tagwire diag --base64 payload.txt",
			},
		},
	}
}

// config returns the configuration for this invocation, loading it on
// first use. A named file that cannot be loaded is a validation error.
func (env *environment) config() (*config.Config, error) {
	if env.loaded != nil {
		return env.loaded, nil
	}

	var cfg *config.Config
	var err error
	switch {
	case env.globals.ConfigPath != "":
		cfg, err = config.LoadFile(env.globals.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	if env.globals.LogLevel != "" {
		cfg.Log.Level = env.globals.LogLevel
		if _, err := cfg.LogLevel(); err != nil {
			return nil, cli.Validation("--log-level: %w", err)
		}
	}

	env.loaded = cfg
	return cfg, nil
}

// logger returns a command logger at the configured level, scoped to
// command.
func (env *environment) logger(cfg *config.Config, command string) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	return cli.NewCommandLogger(env.stderr, level).With("command", command)
}
