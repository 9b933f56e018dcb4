// Package main provides the CLI entrypoint for ctor-generator.
//
// ctor-generator writes a constructor for every struct type whose doc comment
// carries the @primary.Constructor annotation. Each constructor takes one
// parameter per immutable field, in declaration order:
//
//	//go:generate go run ctor-generator/cmd/ctor-generator gen ./...
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"ctor-generator/internal/cmd"
	"ctor-generator/internal/config"
	"ctor-generator/internal/log"
)

func main() {
	jsonPaths, yamlPaths, tomlPaths, wdErr := config.CandidatePathsFromWorkDir(findUserConfig(os.Args[1:]), os.Getwd)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("ctor-generator"),
		kong.Description("Generate constructors for types marked @primary.Constructor"),
		kong.UsageOnError(),
		// Flags and env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	if wdErr != nil {
		logger.Warn("skipping project config files", "error", wdErr)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Bind(logger, cli.GeneratorOptions())
	ctx.BindTo(sigCtx, (*context.Context)(nil))

	err = ctx.Run()
	if err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("CTOR_GENERATOR_CONFIG"); v != "" {
		return v
	}
	return ""
}
