// Package config holds the generator options shared by the command line and
// configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/pass"
)

// Keys follow the loaders: kong's JSON resolver reads snake_case keys, the
// YAML and TOML loaders read the flag names. Every key is top-level, so a
// written file resolves the same way in all three formats. Empty paths are
// omitted because kong expands an empty path to the working directory.

// Options configures a generator run.
type Options struct {
	IncludeEmbedded bool     `json:"include_embedded"    toml:"include-embedded"    yaml:"include-embedded"`
	Suffix          string   `json:"suffix"              toml:"suffix"              yaml:"suffix"`
	Tags            []string `json:"tags"                toml:"tags"                yaml:"tags"`
	Tests           bool     `json:"tests"               toml:"tests"               yaml:"tests"`
	Strict          bool     `json:"strict"              toml:"strict"              yaml:"strict"`
	DebugDir        string   `json:"debug_dir,omitempty" toml:"debug-dir,omitempty" yaml:"debug-dir,omitempty"`
	Comments        bool     `json:"comments"            toml:"comments"            yaml:"comments"`
	LogLevel        string   `json:"log_level"           toml:"log-level"           yaml:"log-level"`
	LogFile         string   `json:"log_file,omitempty"  toml:"log-file,omitempty"  yaml:"log-file,omitempty"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		Suffix:   "_ctor.go",
		Tags:     []string{},
		Comments: true,
		LogLevel: "info",
	}
}

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	var errs []error

	switch {
	case o.Suffix == "":
		errs = append(errs, errors.New("suffix must not be empty"))
	case !strings.HasSuffix(o.Suffix, ".go"):
		errs = append(errs, fmt.Errorf("suffix %q must end in .go", o.Suffix))
	case strings.HasSuffix(o.Suffix, "_test.go"):
		errs = append(errs, fmt.Errorf("suffix %q must not end in _test.go", o.Suffix))
	case strings.ContainsAny(o.Suffix, `/\`):
		errs = append(errs, fmt.Errorf("suffix %q must not contain path separators", o.Suffix))
	}

	if o.LogLevel != "" && !slices.Contains(logLevels, o.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", o.LogLevel))
	}

	for _, tag := range o.Tags {
		if tag == "" || strings.ContainsAny(tag, " ,") {
			errs = append(errs, fmt.Errorf("invalid build tag %q", tag))
		}
	}

	return errors.Join(errs...)
}

// PassOptions converts the options into pass options.
func (o Options) PassOptions() pass.Options {
	opts := pass.DefaultOptions()
	opts.Plan.IncludeEmbedded = o.IncludeEmbedded
	opts.Plan.Suffix = o.Suffix
	opts.Generator.DebugDir = o.DebugDir
	opts.Generator.GenerateComments = o.Comments
	opts.Strict = o.Strict

	return opts
}

// LoadConfig converts the options into a package load configuration.
func (o Options) LoadConfig(dir string) analyze.LoadConfig {
	return analyze.LoadConfig{
		Dir:   dir,
		Tags:  o.Tags,
		Tests: o.Tests,
	}
}

// NormalizeFormat returns the canonical name of a config file format, or ""
// if it is not supported.
func NormalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// Marshal serializes options in the given format.
func Marshal(o Options, format string) ([]byte, error) {
	switch NormalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(o)
	case "toml":
		return toml.Marshal(o)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile writes options to path. An empty format is taken from the file
// extension.
func WriteFile(o Options, path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	data, err := Marshal(o, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
