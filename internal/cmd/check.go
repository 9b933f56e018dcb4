package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"ctor-generator/internal/config"
	"ctor-generator/internal/gen"
)

// ErrStale is returned by check when generated files are missing or differ.
var ErrStale = errors.New("generated constructors are out of date")

// Check verifies that the generated files on disk are current.
type Check struct {
	Target `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(ctx context.Context, logger *slog.Logger, opts config.Options) error {
	res, err := runPass(ctx, logger, opts, c.Target)
	if err != nil {
		return err
	}

	stale, err := gen.DiffUnits(res.Units.Units(), os.ReadFile)
	if err != nil {
		return err
	}

	for _, path := range stale {
		logger.Error("stale generated file", "path", path)
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %d file(s), run ctor-generator gen", ErrStale, len(stale))
	}

	logger.Info("generated constructors are up to date", "constructors", res.Units.Len())

	return nil
}
