package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRun(t *testing.T) {
	t.Run("dump scene", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"--depth", "3"}, &out))
		require.Contains(t, out.String(), "Aria")
		require.NotContains(t, out.String(), "met the blacksmith")
	})

	t.Run("hidden fields", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"--hidden"}, &out))
		require.Contains(t, out.String(), "met the blacksmith")
	})

	t.Run("single property", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-p", "Inventory/Items[0]/Count"}, &out))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
		require.Equal(t, "Int", doc["type"])
		require.Equal(t, 3, doc["value"])
	})

	t.Run("set and undo", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-p", "Level", "-s", "42", "-u"}, &out))

		set := strings.Index(out.String(), "value: 42")
		undone := strings.Index(out.String(), "value: 12")
		require.GreaterOrEqual(t, set, 0)
		require.Greater(t, undone, set)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inspect.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_depth: 1\nlog_level: error\n"), 0o600))

		var out bytes.Buffer
		require.NoError(t, run([]string{"-c", path}, &out))
		require.NotContains(t, out.String(), "potion")
	})

	t.Run("errors", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, run([]string{"-s", "1"}, &out))
		require.Error(t, run([]string{"-p", "Missing"}, &out))
		require.Error(t, run([]string{"-p", "Level", "-s", `"text"`}, &out))
		require.Error(t, run([]string{"--unknown"}, &out))
	})
}
