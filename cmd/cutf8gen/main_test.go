package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const yamlManifest = `package: symbols
literals:
  - name: Start
    value: _start
    doc: Start is the entry point.
`

const tomlManifest = `package = "symbols"
tags = "linux"

[[literals]]
name = "Env"
value = "env"
`

const expectedYAMLOutput = `// Code generated by cutf8gen. DO NOT EDIT.

package symbols

import "github.com/tetratelabs/cutf8"

var (
	// Start is the entry point.
	Start = cutf8.UncheckedFromString("_start\x00")
)
`

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "literals.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlManifest), 0o600))
	tomlPath := filepath.Join(dir, "literals.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlManifest), 0o600))

	t.Run("yaml to stdout", func(t *testing.T) {
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", yamlPath})
		require.Equal(t, 0, exitCode, stdErr)
		require.Equal(t, expectedYAMLOutput, stdOut)
	})

	t.Run("toml with build tags", func(t *testing.T) {
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "--manifest", tomlPath})
		require.Equal(t, 0, exitCode, stdErr)
		require.Contains(t, stdOut, "//go:build linux\n")
		require.Contains(t, stdOut, `Env = cutf8.UncheckedFromString("env\x00")`)
	})

	t.Run("output file", func(t *testing.T) {
		out := filepath.Join(dir, "literals_gen.go")
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", yamlPath, "-o", out})
		require.Equal(t, 0, exitCode, stdErr)
		require.Empty(t, stdOut)
		require.Contains(t, stdErr, "wrote literals")

		written, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, expectedYAMLOutput, string(written))
	})

	t.Run("flag overrides manifest", func(t *testing.T) {
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", yamlPath, "--package", "other"})
		require.Equal(t, 0, exitCode, stdErr)
		require.Contains(t, stdOut, "package other\n")
	})

	t.Run("generator from flag", func(t *testing.T) {
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", yamlPath, "--generator", "make literals"})
		require.Equal(t, 0, exitCode, stdErr)
		require.True(t, strings.HasPrefix(stdOut, "// Code generated by make literals. DO NOT EDIT.\n"))
	})

	t.Run("generator from manifest", func(t *testing.T) {
		path := filepath.Join(dir, "generator.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generator: go generate\n"+yamlManifest), 0o600))
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", path})
		require.Equal(t, 0, exitCode, stdErr)
		require.True(t, strings.HasPrefix(stdOut, "// Code generated by go generate. DO NOT EDIT.\n"))
	})

	t.Run("env overrides manifest", func(t *testing.T) {
		t.Setenv("CUTF8GEN_IMPORT_PATH", "example.com/vendored/cutf8")
		exitCode, stdOut, stdErr := runMain(t, []string{"generate", "-m", yamlPath})
		require.Equal(t, 0, exitCode, stdErr)
		require.Contains(t, stdOut, `import "example.com/vendored/cutf8"`)
	})
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("literals:\n  - name: Bad\n    value: \"a\\0b\"\n"), 0o600))
	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte("package: symbols\n"), 0o600))

	tests := []struct {
		name           string
		args           []string
		expectedStdErr string
	}{
		{
			name:           "missing manifest flag",
			args:           []string{"generate"},
			expectedStdErr: `required flag(s) "manifest" not set`,
		},
		{
			name:           "manifest not found",
			args:           []string{"generate", "-m", filepath.Join(dir, "missing.yaml")},
			expectedStdErr: "error reading manifest",
		},
		{
			name:           "interior nul",
			args:           []string{"generate", "-m", badPath},
			expectedStdErr: "literal Bad: nul byte found at position 1 before the end of the string",
		},
		{
			name:           "no literals",
			args:           []string{"generate", "-m", emptyPath},
			expectedStdErr: "no literals to generate",
		},
		{
			name:           "unknown command",
			args:           []string{"compile"},
			expectedStdErr: `unknown command "compile"`,
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			exitCode, stdOut, stdErr := runMain(t, tc.args)
			require.Equal(t, 1, exitCode)
			require.Empty(t, stdOut)
			require.Contains(t, stdErr, tc.expectedStdErr)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bin")
	require.NoError(t, os.WriteFile(good, []byte("Heyo!\x00"), 0o600))
	unterminated := filepath.Join(dir, "unterminated.bin")
	require.NoError(t, os.WriteFile(unterminated, []byte("Heyo!"), 0o600))
	invalid := filepath.Join(dir, "invalid.bin")
	require.NoError(t, os.WriteFile(invalid, []byte{0xff, 0xfe, 0}, 0o600))

	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStdOut   string
		expectedStdErr   string
	}{
		{
			name:           "terminated file",
			args:           []string{"check", good},
			expectedStdOut: good + ": ok (5 bytes)\n",
		},
		{
			name:           "content file",
			args:           []string{"check", "--content", unterminated},
			expectedStdOut: unterminated + ": ok (5 bytes)\n",
		},
		{
			name:           "inline strings",
			args:           []string{"check", "-s", "abc", "-s", ""},
			expectedStdOut: "\"abc\": ok (3 bytes)\n\"\": ok (0 bytes)\n",
		},
		{
			name:             "missing nul",
			args:             []string{"check", good, unterminated},
			expectedExitCode: 1,
			expectedStdOut:   good + ": ok (5 bytes)\n",
			expectedStdErr:   "missing nul byte at the end of the string",
		},
		{
			name:             "content with nul",
			args:             []string{"check", "--content", good},
			expectedExitCode: 1,
			expectedStdErr:   "nul byte found at position 5 before the end of the string",
		},
		{
			name:             "invalid utf-8",
			args:             []string{"check", invalid},
			expectedExitCode: 1,
			expectedStdErr:   "invalid utf-8 sequence of 1 bytes from index 0",
		},
		{
			name:             "unreadable",
			args:             []string{"check", filepath.Join(dir, "missing.bin")},
			expectedExitCode: 1,
			expectedStdErr:   "1 of 1 inputs failed",
		},
		{
			name:             "nothing to check",
			args:             []string{"check"},
			expectedExitCode: 1,
			expectedStdErr:   "nothing to check",
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			exitCode, stdOut, stdErr := runMain(t, tc.args)
			require.Equal(t, tc.expectedExitCode, exitCode, stdErr)
			require.Equal(t, tc.expectedStdOut, stdOut)
			require.Contains(t, stdErr, tc.expectedStdErr)
		})
	}
}

func TestVerbose(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bin")
	require.NoError(t, os.WriteFile(good, []byte("ok\x00"), 0o600))

	_, _, quiet := runMain(t, []string{"check", good})
	require.NotContains(t, quiet, "read")

	exitCode, _, stdErr := runMain(t, []string{"-v", "check", good})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdErr, "read")
	require.Contains(t, stdErr, "bytes=3")
}

func TestHelp(t *testing.T) {
	exitCode, stdOut, _ := runMain(t, nil)
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdOut, "generate")
	require.Contains(t, stdOut, "check")
}

func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	var exitCode int
	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	var exited bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				exited = true
			}
		}()
		doMain(args, stdOut, stdErr, func(code int) {
			exitCode = code
			panic(code)
		})
	}()

	require.True(t, exited)

	return exitCode, stdOut.String(), stdErr.String()
}
