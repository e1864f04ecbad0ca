// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the tagwire CLI.
//
// Configuration is loaded from a single YAML file specified by:
//   - TAGWIRE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no automatic discovery. Without either, the CLI runs on
// [Default]. Values in the file overlay the defaults field by field;
// command-line flags in turn override the file for a single run.
package config
