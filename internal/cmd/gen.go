package cmd

import (
	"context"
	"log/slog"

	"ctor-generator/internal/config"
	"ctor-generator/internal/gen"
)

// Gen generates constructors and writes them next to the marked types.
type Gen struct {
	Target `embed:""`

	DryRun bool `help:"Print generated files to stdout instead of writing them"`
}

// Run is called by Kong when the gen command is executed.
func (c *Gen) Run(ctx context.Context, logger *slog.Logger, opts config.Options) error {
	res, err := runPass(ctx, logger, opts, c.Target)
	if err != nil {
		return err
	}

	units := res.Units.Units()

	out := gen.FileOutput()
	if c.DryRun {
		out = gen.WriterOutput(stdout)
	}

	if err := gen.WriteUnits(units, out); err != nil {
		return err
	}

	for _, u := range units {
		logger.Debug("wrote constructor", "type", u.Key.String(), "path", u.Path, "dry_run", c.DryRun)
	}

	logger.Info("done", "candidates", res.Candidates, "constructors", len(units),
		"warnings", len(res.Diagnostics.Warnings))

	return nil
}
