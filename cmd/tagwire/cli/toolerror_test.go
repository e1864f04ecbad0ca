// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestToolError_Unwrap(t *testing.T) {
	err := Validation("bad input: %w", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should see through ToolError")
	}
	if err.Error() != "bad input: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), ExitFailure},
		{"validation", Validation("bad"), ExitValidation},
		{"wrapped validation", fmt.Errorf("decode: %w", Validation("bad")), ExitValidation},
		{"not found", NotFound("missing"), ExitFailure},
		{"internal", Internal("bug"), ExitFailure},
		{"exit error", &ExitError{Code: 3}, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExitStatus(test.err); got != test.want {
				t.Errorf("ExitStatus = %d, want %d", got, test.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 1}
	if err.ExitCode() != 1 || err.Error() != "exit code 1" {
		t.Errorf("ExitError = %q / %d", err.Error(), err.ExitCode())
	}
}

func TestNewLogger(t *testing.T) {
	var output bytes.Buffer
	logger := newLogger(&output, false, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("encoded", "values", 2)

	line := output.String()
	if strings.Contains(line, "hidden") {
		t.Error("debug record emitted at info level")
	}
	if !strings.Contains(line, `"msg":"encoded"`) || !strings.Contains(line, `"values":2`) {
		t.Errorf("JSON log line = %q", line)
	}

	output.Reset()
	newLogger(&output, true, slog.LevelInfo).Info("encoded", "values", 2)
	if !strings.Contains(output.String(), "msg=encoded values=2") {
		t.Errorf("text log line = %q", output.String())
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	params := JSONOutput{}
	done, err := params.EmitJSON(&output, map[string]int{"a": 1})
	if done || err != nil || output.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, output.String())
	}

	params.OutputJSON = true
	done, err = params.EmitJSON(&output, map[string]int{"a": 1})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v)", done, err)
	}
	if output.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("EmitJSON output = %q", output.String())
	}
}
