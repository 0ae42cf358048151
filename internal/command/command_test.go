// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/diffai/internal/config"
	"github.com/tfctl/diffai/internal/meta"
	"github.com/tfctl/diffai/internal/options"
	"github.com/tfctl/diffai/internal/result"
)

// run executes the app with args after the binary name and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	m := meta.Meta{
		Args:    append([]string{"diffai"}, args...),
		Config:  config.Config,
		Context: context.Background(),
		Stdin:   strings.NewReader(stdin),
		Stdout:  &out,
		Stderr:  &errOut,
	}
	err := NewApp(m).Run(context.Background(), m.Args)
	return out.String(), err
}

// withConfig points the global config at a temp file holding content.
func withConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diffai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(config.EnvFile, path)

	config.Config = config.Type{}
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDiffInline(t *testing.T) {
	withConfig(t, "{}")

	out, err := run(t, "", "diff", `{"a":1}`, `{"a":2}`)
	require.NoError(t, err)
	assert.Equal(t, "~ a: 1 -> 2\n", out)

	out, err = run(t, "", "diff", `[1,2,3]`, `[1,2]`)
	require.NoError(t, err)
	assert.Equal(t, "- [2]: 3\n", out)

	out, err = run(t, "", "diff", `{"a":1}`, `{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "No differences found.\n", out)
}

func TestDiffOutputJSON(t *testing.T) {
	withConfig(t, "{}")

	out, err := run(t, "", "diff", "--output", "json", `{"a":1}`, `{"b":1}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "Removed"`)
	assert.Contains(t, out, `"type": "Added"`)
	assert.True(t, strings.HasPrefix(out, "["))
}

func TestDiffStdinYAML(t *testing.T) {
	withConfig(t, "{}")

	out, err := run(t, "optimizer: adam\n", "diff", "-", `{"optimizer":"sgd"}`)
	require.NoError(t, err)
	assert.Equal(t, "~ optimizer: optimizer adam -> sgd\n", out)
}

func TestDiffFilesFilterSortSummary(t *testing.T) {
	withConfig(t, "{}")
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.json", `{"z": 1, "a": 1, "lr": 0.1}`)
	newPath := writeFile(t, dir, "new.json", `{"z": 2, "a": 3, "lr": 0.2}`)

	out, err := run(t, "", "diff", "--filter", "type=Modified", "--sort", "path", "--summary", oldPath, newPath)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "~ a: 1 -> 3", lines[0])
	assert.Equal(t, "~ z: 1 -> 2", lines[1])
	assert.NotContains(t, out, "learning rate")
	assert.Regexp(t, `Modified\s+2`, out)
}

func TestDiffEpsilon(t *testing.T) {
	withConfig(t, "{}")

	out, err := run(t, "", "diff", "--epsilon", "0.5", `{"a":1.0}`, `{"a":1.2}`)
	require.NoError(t, err)
	assert.Equal(t, "No differences found.\n", out)

	t.Setenv("DIFFAI_EPSILON", "0.01")
	out, err = run(t, "", "diff", `{"a":1.0}`, `{"a":1.2}`)
	require.NoError(t, err)
	assert.Equal(t, "~ a: 1.0 -> 1.2\n", out)
}

func TestDiffConfigOptions(t *testing.T) {
	withConfig(t, "options:\n  ignore_keys_regex: \"^_\"\n  output_format: yaml\n")

	out, err := run(t, "", "diff", `{"_ts":1,"a":1}`, `{"_ts":2,"a":2}`)
	require.NoError(t, err)
	assert.Equal(t, "- type: Modified\n  path: a\n  old_value: 1\n  new_value: 2\n", out)

	// A flag wins over the file.
	out, err = run(t, "", "diff", "--output", "diffai", `{"_ts":1,"a":1}`, `{"_ts":2,"a":2}`)
	require.NoError(t, err)
	assert.Equal(t, "~ a: 1 -> 2\n", out)
}

func TestDiffErrors(t *testing.T) {
	withConfig(t, "{}")

	tests := []struct {
		name   string
		stdin  string
		args   []string
		target error
		msg    string
	}{
		{name: "one operand", args: []string{"diff", `{}`}, target: ErrUsage},
		{name: "two stdin", args: []string{"diff", "-", "-"}, target: ErrUsage},
		{name: "bad operand", args: []string{"diff", "{nope", `{}`}, msg: "neither a readable file nor inline JSON"},
		{name: "bad regex", args: []string{"diff", "--ignore-keys-regex", "(", `{}`, `{}`}, target: options.ErrInvalidRegex},
		{name: "bad output", args: []string{"diff", "--output", "xml", `{}`, `{}`}, msg: "must be one of"},
		{name: "negative epsilon", args: []string{"diff", "--epsilon=-1", `1`, `2`}, msg: "diff error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	withConfig(t, "{}")
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "a.yaml", "model:\n  activation: relu\n  version: \"1.0\"\n")
	newPath := writeFile(t, dir, "b.json", `{"model": {"activation": "gelu", "version": "1.1"}}`)

	out, err := run(t, "", "paths", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, "~ model.activation: activation relu -> gelu\n~ model.version: version 1.0 -> 1.1\n", out)

	out, err = run(t, "", "paths", "--delta", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"relu"`)
	assert.Contains(t, out, "~ model.activation")

	_, err = run(t, "", "paths", oldPath)
	assert.ErrorIs(t, err, ErrUsage)

	_, err = run(t, "", "paths", oldPath, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormat(t *testing.T) {
	withConfig(t, "{}")

	records := `[{"type":"Added","path":"b","value":2.0},{"type":"Removed","path":"a","value":[1]}]`
	out, err := run(t, records, "format")
	require.NoError(t, err)
	assert.Equal(t, "+ b: 2.0\n- a: [1]\n", out)

	out, err = run(t, records, "format", "--output", "json", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"path": "b"`)

	dir := t.TempDir()
	single := writeFile(t, dir, "one.json", `{"type":"Modified","path":"x","old_value":1,"new_value":2}`)
	out, err = run(t, "", "format", single)
	require.NoError(t, err)
	assert.Equal(t, "~ x: 1 -> 2\n", out)

	_, err = run(t, `[{"type":"TensorShapeChanged","path":"w","old_shape":[1],"new_shape":[2]}]`, "format")
	assert.ErrorIs(t, err, result.ErrInvalidDiffType)

	_, err = run(t, `not json`, "format")
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	withConfig(t, "{}")

	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o filenames -F _diffai diffai")

	out, err = run(t, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef diffai")
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"diffai", "JSON", "yaml"} {
		assert.NoError(t, OutputValidator(v), v)
	}
	assert.Error(t, OutputValidator("text"))
	assert.Error(t, OutputValidator(3))
}

func TestFlagsAreSorted(t *testing.T) {
	app := NewApp(meta.Meta{})
	for _, cmd := range app.Commands {
		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0], cmd.Name)
		}
	}
}
