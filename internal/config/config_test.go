// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
options:
  epsilon: 0.001
  array_id_key: id
colors:
  added: "#00ff00"
  retries: 3
diff:
  colors:
    added: "#00aa00"
  ckpt: ["--epsilon", "1e-6"]
  bad: [1, 2]
color: true
`

// withConfig writes content to a temp file, points DIFFAI_CFG_FILE at it and
// resets the global Config around fn.
func withConfig(t *testing.T, content string, fn func(t *testing.T)) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(EnvFile, path)

	Config = Type{}
	defer func() { Config = Type{} }()
	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, sample, func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, os.Getenv(EnvFile), cfg.Source)
		assert.Contains(t, cfg.Data, "options")
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(EnvFile, filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "config file not found")
	})

	t.Run("directory", func(t *testing.T) {
		t.Setenv(EnvFile, t.TempDir())
		_, err := Load()
		assert.ErrorContains(t, err, "points to a directory")
	})

	t.Run("bad yaml", func(t *testing.T) {
		withConfig(t, "a: [", func(t *testing.T) {
			_, err := Load()
			assert.ErrorContains(t, err, "failed to parse")
		})
	})
}

func TestGetters(t *testing.T) {
	withConfig(t, sample, func(t *testing.T) {
		s, err := GetString("options.array_id_key")
		require.NoError(t, err)
		assert.Equal(t, "id", s)

		f, err := GetFloat("options.epsilon")
		require.NoError(t, err)
		assert.Equal(t, 0.001, f)

		f, err = GetFloat("colors.retries")
		require.NoError(t, err)
		assert.Equal(t, 3.0, f)

		b, err := GetBool("color")
		require.NoError(t, err)
		assert.True(t, b)

		list, err := GetStringSlice("diff.ckpt")
		require.NoError(t, err)
		assert.Equal(t, []string{"--epsilon", "1e-6"}, list)

		_, err = GetStringSlice("diff.bad")
		assert.ErrorContains(t, err, "not a string")

		_, err = GetString("colors.retries")
		assert.ErrorContains(t, err, "not a string")

		m, err := GetMap("options")
		require.NoError(t, err)
		assert.Equal(t, "id", m["array_id_key"])

		m, err = GetMap("nothing.here")
		require.NoError(t, err)
		assert.Nil(t, m)
	})
}

func TestDefaults(t *testing.T) {
	withConfig(t, sample, func(t *testing.T) {
		s, err := GetString("colors.removed", "#ff0000")
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", s)

		_, err = GetString("colors.removed")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNamespace(t *testing.T) {
	withConfig(t, sample, func(t *testing.T) {
		_, err := Load()
		require.NoError(t, err)

		SetNamespace("diff")
		s, err := GetString("colors.added")
		require.NoError(t, err)
		assert.Equal(t, "#00aa00", s)

		// Falls back to the bare key when the namespaced one is missing.
		f, err := GetFloat("options.epsilon")
		require.NoError(t, err)
		assert.Equal(t, 0.001, f)
	})
}
