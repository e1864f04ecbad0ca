// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/lib/binhash"
	"github.com/bureau-foundation/tagwire/lib/config"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// runTagwire executes the command tree on in-memory streams and
// returns stdout.
func runTagwire(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	var stdout, stderr bytes.Buffer
	env := &environment{
		stdin:  bytes.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
	}
	err := newRoot(env).Execute(args)
	return stdout.String(), err
}

func TestEncodeHex(t *testing.T) {
	output, err := runTagwire(t, []byte(`{"id": 1}`), "encode", "--hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// object, 1 field, token 0 = "id" (2 code units), inline 1
	if want := "11010002696421\n"; output != want {
		t.Errorf("encode --hex = %q, want %q", output, want)
	}
}

func TestEncodeDecodeBase64Roundtrip(t *testing.T) {
	input := `
		// two values
		{"name": "tagwire", "tags": {"$set": ["a", "b"]}, "when": {"$date": 1000}}
		[1, {"$hole": true}, {"$number": "NaN"}, -12345678901]
	`
	encoded, err := runTagwire(t, []byte(input), "encode", "--base64")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := runTagwire(t, []byte(encoded), "decode", "--base64", "-c")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := `{"name":"tagwire","tags":{"$set":["a","b"]},"when":{"$date":1000}}` + "\n" +
		`[1,{"$hole":true},{"$number":"NaN"},-12345678901]` + "\n"
	if decoded != want {
		t.Errorf("decode =\n%s\nwant\n%s", decoded, want)
	}
}

func TestDecodeSlurp(t *testing.T) {
	stream, err := wire.Marshal(wire.Int(1), wire.Str("x"), wire.Null{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "decode", "-s", "-c")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "[1,\"x\",null]\n"; output != want {
		t.Errorf("decode -s = %q, want %q", output, want)
	}
}

func TestDecodeIndented(t *testing.T) {
	stream, err := wire.Marshal(wire.NewObject("a", wire.Array{wire.Int(1)}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "{\n  \"a\": [\n    1\n  ]\n}\n"; output != want {
		t.Errorf("decode =\n%s\nwant\n%s", output, want)
	}
}

func TestDecodeColorAlways(t *testing.T) {
	stream, err := wire.Marshal(wire.NewObject("a", wire.Int(1)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "decode", "--color", "always")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected ANSI escapes in highlighted output, got %q", output)
	}

	if _, err := runTagwire(t, stream, "decode", "--color", "sometimes"); cli.ExitStatus(err) != cli.ExitValidation {
		t.Errorf("bad --color: err = %v, want validation error", err)
	}
}

func TestDecodeRegisteredDigest(t *testing.T) {
	digest := binhash.Sum([]byte("content"))
	stream, err := wire.Marshal(wire.Custom(binhash.TypeName, digest))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "decode", "-c")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := `{"$registered":"binhash.digest","$object":"` + digest.String() + "\"}\n"
	if output != want {
		t.Errorf("decode = %q, want %q", output, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	unregistered, err := wire.Marshal(wire.Custom("binhash.digest", binhash.Digest{}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// Rename the token so no serializer matches.
	unregistered = bytes.Replace(unregistered, []byte("binhash"), []byte("unknown"), 1)

	tests := []struct {
		name   string
		stdin  []byte
		args   []string
		target any
	}{
		{"unknown tag", []byte{20}, nil, new(*wire.UnknownTagError)},
		{"truncated", []byte{byte(wire.TagString), 5, 'a'}, nil, nil},
		{"missing serializer", unregistered, nil, new(*wire.MissingSerializerError)},
		{"empty", nil, nil, nil},
		{"bad hex", []byte("zz"), []string{"--hex"}, nil},
		{"bad base64", []byte("!!!"), []string{"--base64"}, nil},
		{"both formats", []byte("00"), []string{"--hex", "--base64"}, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{"decode"}, test.args...)
			_, err := runTagwire(t, test.stdin, args...)
			if err == nil {
				t.Fatal("decode should fail")
			}
			if status := cli.ExitStatus(err); status != cli.ExitValidation {
				t.Errorf("exit status = %d, want %d (err: %v)", status, cli.ExitValidation, err)
			}
			if test.target != nil && !errors.As(err, test.target) {
				t.Errorf("error %v does not wrap %T", err, test.target)
			}
		})
	}
}

func TestDiagHex(t *testing.T) {
	output, err := runTagwire(t, []byte("0d 02 61 62\n2a"), "diag", "--hex", "--offsets")
	if err != nil {
		t.Fatalf("diag: %v", err)
	}
	want := "     0  \"ab\"\n     4  10\n"
	if output != want {
		t.Errorf("diag =\n%q\nwant\n%q", output, want)
	}
}

func TestDigest(t *testing.T) {
	output, err := runTagwire(t, nil, "digest")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	emptyDigest := "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if output != emptyDigest+"\n" {
		t.Errorf("digest = %q, want %q", output, emptyDigest)
	}

	output, err = runTagwire(t, nil, "digest", "--verify", emptyDigest)
	if err != nil || output != "OK\n" {
		t.Errorf("digest --verify match = (%q, %v)", output, err)
	}
}

func TestDigestTransportIndependent(t *testing.T) {
	stream, err := wire.Marshal(wire.Str("payload"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	raw, err := runTagwire(t, stream, "digest")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	text, err := runTagwire(t, []byte(wire.FromBytes(stream).ToBase64()), "digest", "--base64")
	if err != nil {
		t.Fatalf("digest --base64: %v", err)
	}
	if raw != text {
		t.Errorf("raw digest %q != base64 digest %q", raw, text)
	}
}

func TestDigestVerifyMismatch(t *testing.T) {
	other := binhash.Sum([]byte("other")).String()
	output, err := runTagwire(t, []byte("data"), "digest", "--verify", other)
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("err = %v, want ExitError{1}", err)
	}
	if !strings.HasPrefix(output, "MISMATCH") || !strings.Contains(output, other) {
		t.Errorf("output = %q", output)
	}

	if _, err := runTagwire(t, nil, "digest", "--verify", "abc"); cli.ExitStatus(err) != cli.ExitValidation {
		t.Errorf("malformed --verify: err = %v, want validation error", err)
	}
}

func TestCBORDiag(t *testing.T) {
	stream, err := wire.Marshal(
		wire.Array{wire.Int(1), wire.Undefined{}},
		wire.NewSet(wire.Int(2)),
	)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "cbor", "--diag")
	if err != nil {
		t.Fatalf("cbor: %v", err)
	}
	if want := "[1, undefined]\n258([2])\n"; output != want {
		t.Errorf("cbor --diag = %q, want %q", output, want)
	}
}

func TestCBORBinary(t *testing.T) {
	stream, err := wire.Marshal(wire.Int(1), wire.Bool(true))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output, err := runTagwire(t, stream, "cbor")
	if err != nil {
		t.Fatalf("cbor: %v", err)
	}
	if output != "\x01\xf5" {
		t.Errorf("cbor = %x, want 01f5", output)
	}
}

func TestFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(`"ab"`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	output, err := runTagwire(t, nil, "encode", "--hex", path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if output != "0d026162\n" {
		t.Errorf("encode file = %q", output)
	}

	_, err = runTagwire(t, nil, "encode", filepath.Join(t.TempDir(), "absent.json"))
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Errorf("missing file: err = %v, want not_found", err)
	}

	_, err = runTagwire(t, nil, "encode", "a", "b")
	if cli.ExitStatus(err) != cli.ExitValidation {
		t.Errorf("two files: err = %v, want validation error", err)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
	}{
		{"empty", "", nil},
		{"malformed JSON", `{"a": `, nil},
		{"registered marker", `{"$registered": "x", "$object": 1}`, nil},
		{"both output forms", `1`, []string{"--hex", "--base64"}},
		{"bad capacity", `1`, []string{"--capacity", "-1"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{"encode"}, test.args...)
			_, err := runTagwire(t, []byte(test.input), args...)
			if status := cli.ExitStatus(err); status != cli.ExitValidation {
				t.Errorf("exit status = %d, want %d (err: %v)", status, cli.ExitValidation, err)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagwire.yaml")
	content := "input:\n  format: hex\noutput:\n  compact: true\n  color: never\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	output, err := runTagwire(t, []byte("11010002696421"), "--config", path, "decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output != "{\"id\":1}\n" {
		t.Errorf("decode with config = %q", output)
	}

	// The environment variable names the same file.
	t.Setenv(config.EnvironmentVariable, path)
	var stdout bytes.Buffer
	env := &environment{stdin: strings.NewReader("21"), stdout: &stdout, stderr: &bytes.Buffer{}}
	if err := newRoot(env).Execute([]string{"decode"}); err != nil {
		t.Fatalf("decode via TAGWIRE_CONFIG: %v", err)
	}
	if stdout.String() != "1\n" {
		t.Errorf("decode via TAGWIRE_CONFIG = %q", stdout.String())
	}
}

func TestConfigErrors(t *testing.T) {
	_, err := runTagwire(t, []byte("1"), "--config", filepath.Join(t.TempDir(), "absent.yaml"), "encode")
	if cli.ExitStatus(err) != cli.ExitValidation {
		t.Errorf("missing config: err = %v, want validation error", err)
	}

	_, err = runTagwire(t, []byte("1"), "--log-level", "loud", "encode")
	if cli.ExitStatus(err) != cli.ExitValidation {
		t.Errorf("bad --log-level: err = %v, want validation error", err)
	}
}

func TestLogging(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	env := &environment{stdin: strings.NewReader(`[1, 2]`), stdout: &stdout, stderr: &stderr}
	if err := newRoot(env).Execute([]string{"--log-level", "info", "encode"}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	log := stderr.String()
	for _, want := range []string{`"msg":"encoded stream"`, `"command":"encode"`, `"values":1`, `"digest":"`} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %s: %s", want, log)
		}
	}
}

func TestVersion(t *testing.T) {
	output, err := runTagwire(t, nil, "version", "--json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(output, `"wire_format": 1`) {
		t.Errorf("version --json = %s", output)
	}

	output, err = runTagwire(t, nil, "version", "--full")
	if err != nil {
		t.Fatalf("version --full: %v", err)
	}
	if !strings.Contains(output, "Wire format: 1") {
		t.Errorf("version --full = %s", output)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runTagwire(t, nil, "decdoe")
	if err == nil || !strings.Contains(err.Error(), `did you mean "decode"?`) {
		t.Errorf("err = %v, want suggestion", err)
	}
}
