// Package cmd implements the ctor-generator command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/config"
	"ctor-generator/internal/diagnostic"
	ilog "ctor-generator/internal/log"
	"ctor-generator/internal/pass"
)

// CLI is the root command. Flags may also be set from JSON, YAML or TOML
// configuration files; flags override config values.
type CLI struct {
	ConfigFile string `help:"Configuration file (json, yaml or toml)" name:"config" type:"path" env:"CTOR_GENERATOR_CONFIG"`

	Log LogFlags `embed:"" prefix:"log-"`

	Options `embed:""`

	Gen    Gen           `cmd:"" default:"withargs" help:"Generate constructors for marked types"`
	Check  Check         `cmd:"" help:"Fail if generated constructors are missing or stale"`
	List   List          `cmd:"" help:"List the constructors that would be generated"`
	Config ConfigCommand `cmd:"" help:"Configuration helpers"`
}

// LogFlags configures logging.
type LogFlags struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"CTOR_GENERATOR_LOG_LEVEL"`
	File  string `help:"Log file path; errors are still printed to stderr" type:"path"`
}

// Options holds the generator flags shared by every command.
type Options struct {
	IncludeEmbedded bool     `help:"Expand fields promoted from embedded structs"`
	Suffix          string   `help:"Output file suffix" default:"_ctor.go"`
	Tags            []string `help:"Extra build tags" sep:","`
	Tests           bool     `help:"Also scan _test.go files"`
	Strict          bool     `help:"Treat package load errors as errors"`
	DebugDir        string   `help:"Directory for unformatted output when formatting fails" type:"path"`
	Comments        bool     `help:"Emit doc comments on generated constructors" default:"true" negatable:""`
}

// GeneratorOptions merges the parsed flags into generator options.
func (c *CLI) GeneratorOptions() config.Options {
	return config.Options{
		IncludeEmbedded: c.IncludeEmbedded,
		Suffix:          c.Suffix,
		Tags:            append([]string{}, c.Tags...),
		Tests:           c.Tests,
		Strict:          c.Strict,
		DebugDir:        c.DebugDir,
		Comments:        c.Comments,
		LogLevel:        c.Log.Level,
		LogFile:         c.Log.File,
	}
}

// Target selects the packages a command operates on.
type Target struct {
	Patterns []string `arg:"" optional:"" default:"./..." help:"Package patterns"`
	Dir      string   `help:"Directory to resolve patterns from" type:"existingdir" default:"."`
}

// runPass loads the target packages and runs one generation pass. Every
// diagnostic is logged; the result is returned even when the pass fails.
func runPass(ctx context.Context, logger *slog.Logger, opts config.Options, t Target) (*pass.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	lcfg := opts.LoadConfig(t.Dir)
	lcfg.Logf = ilog.Logf(logger)

	logger.Debug("loading packages", "dir", t.Dir, "patterns", t.Patterns, "tags", opts.Tags, "tests", opts.Tests)

	prog, err := analyze.LoadPackages(ctx, lcfg, t.Patterns...)
	if err != nil {
		return nil, err
	}

	res, err := pass.Run(ctx, prog, opts.PassOptions(), logger)
	if res != nil {
		logDiagnostics(logger, res)
	}

	return res, err
}

func logDiagnostics(logger *slog.Logger, res *pass.Result) {
	for _, d := range res.Diagnostics.All() {
		attrs := []any{"code", d.Code}
		if d.Type != "" {
			attrs = append(attrs, "type", d.Type)
		}

		if d.Field != "" {
			attrs = append(attrs, "field", d.Field)
		}

		if d.Pos.IsValid() {
			attrs = append(attrs, "pos", d.Pos.String())
		}

		if len(d.Suggestions) > 0 {
			attrs = append(attrs, "suggestions", d.Suggestions)
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			logger.Error(d.Message, attrs...)
		case diagnostic.SeverityWarning:
			logger.Warn(d.Message, attrs...)
		default:
			logger.Debug(d.Message, attrs...)
		}
	}
}

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout
