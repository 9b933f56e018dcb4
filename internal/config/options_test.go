package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestDefault_IsValid(t *testing.T) {
	opts := Default()
	require.NoError(t, opts.Validate())
	assert.Equal(t, "_ctor.go", opts.Suffix)
	assert.True(t, opts.Comments)
	assert.False(t, opts.IncludeEmbedded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		errMsg string
	}{
		{"empty suffix", func(o *Options) { o.Suffix = "" }, "must not be empty"},
		{"not go", func(o *Options) { o.Suffix = "_ctor.txt" }, "must end in .go"},
		{"test suffix", func(o *Options) { o.Suffix = "_ctor_test.go" }, "must not end in _test.go"},
		{"separator", func(o *Options) { o.Suffix = "/ctor.go" }, "path separators"},
		{"log level", func(o *Options) { o.LogLevel = "verbose" }, "unknown log level"},
		{"bad tag", func(o *Options) { o.Tags = []string{"a b"} }, "invalid build tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.modify(&opts)

			err := opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	opts := Default()
	opts.Suffix = ""
	opts.LogLevel = "loud"

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suffix")
	assert.Contains(t, err.Error(), "log level")
}

func TestPassOptions(t *testing.T) {
	opts := Default()
	opts.IncludeEmbedded = true
	opts.Suffix = "_new.go"
	opts.DebugDir = "/tmp/debug"
	opts.Comments = false
	opts.Strict = true

	po := opts.PassOptions()
	assert.True(t, po.Plan.IncludeEmbedded)
	assert.Equal(t, "_new.go", po.Plan.Suffix)
	assert.Equal(t, "/tmp/debug", po.Generator.DebugDir)
	assert.False(t, po.Generator.GenerateComments)
	assert.True(t, po.Strict)
	assert.Equal(t, "ctor-generator/primary", po.Registry.Path())
}

func TestLoadConfig(t *testing.T) {
	opts := Default()
	opts.Tags = []string{"integration"}
	opts.Tests = true

	lc := opts.LoadConfig("./pkg")
	assert.Equal(t, "./pkg", lc.Dir)
	assert.Equal(t, []string{"integration"}, lc.Tags)
	assert.True(t, lc.Tests)
}

func TestMarshal_Keys(t *testing.T) {
	opts := Default()
	opts.IncludeEmbedded = true
	opts.DebugDir = "debug"

	t.Run("json", func(t *testing.T) {
		data, err := Marshal(opts, "json")
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, true, m["include_embedded"])
		assert.Equal(t, "debug", m["debug_dir"])
		assert.Equal(t, "info", m["log_level"])
		assert.NotContains(t, m, "log_file")
		assert.NotContains(t, m, "log")
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := Marshal(opts, "yml")
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, yaml.Unmarshal(data, &m))
		assert.Equal(t, true, m["include-embedded"])
		assert.Equal(t, "debug", m["debug-dir"])
		assert.Equal(t, "info", m["log-level"])
		assert.NotContains(t, m, "log-file")
	})

	t.Run("toml", func(t *testing.T) {
		data, err := Marshal(opts, "toml")
		require.NoError(t, err)

		tree, err := toml.LoadBytes(data)
		require.NoError(t, err)
		assert.Equal(t, true, tree.Get("include-embedded"))
		assert.Equal(t, "info", tree.Get("log-level"))
		assert.False(t, tree.Has("log-file"))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Marshal(opts, "ini")
		require.Error(t, err)
	})
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	opts := Default()
	opts.Tags = []string{"integration", "e2e"}

	require.NoError(t, WriteFile(opts, path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Options
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, opts, got)
}

func TestCandidatePaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/u")

	jsonPaths, yamlPaths, tomlPaths := CandidatePaths("custom.toml", "/work")

	require.NotEmpty(t, tomlPaths)
	assert.Equal(t, "custom.toml", tomlPaths[0])
	assert.Contains(t, jsonPaths, filepath.Join("/work", ".ctor-generator.json"))
	assert.Contains(t, yamlPaths, filepath.Join("/work", ".ctor-generator.yml"))
	assert.NotContains(t, jsonPaths, "custom.toml")
}

func TestCandidatePaths_UserPathDefaultsToJSON(t *testing.T) {
	jsonPaths, _, _ := CandidatePaths("settings.conf", "")
	require.NotEmpty(t, jsonPaths)
	assert.Equal(t, "settings.conf", jsonPaths[0])
}

func TestCandidatePathsFromWorkDir(t *testing.T) {
	t.Run("working directory", func(t *testing.T) {
		jsonPaths, _, _, err := CandidatePathsFromWorkDir("", func() (string, error) { return "/work", nil })
		require.NoError(t, err)
		assert.Contains(t, jsonPaths, filepath.Join("/work", ".ctor-generator.json"))
	})

	t.Run("getwd fails", func(t *testing.T) {
		failure := errors.New("getwd: no such file or directory")

		jsonPaths, yamlPaths, tomlPaths, err := CandidatePathsFromWorkDir("custom.yaml",
			func() (string, error) { return "", failure })
		require.ErrorIs(t, err, failure)

		require.NotEmpty(t, yamlPaths)
		assert.Equal(t, "custom.yaml", yamlPaths[0])

		for _, p := range slices.Concat(jsonPaths, yamlPaths, tomlPaths) {
			assert.NotEqual(t, ".ctor-generator", strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
				"working directory candidate %s", p)
		}
	})
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "yaml", NormalizeFormat("YML"))
	assert.Equal(t, "json", NormalizeFormat("json"))
	assert.Equal(t, "toml", NormalizeFormat("Toml"))
	assert.Empty(t, NormalizeFormat("xml"))
}
