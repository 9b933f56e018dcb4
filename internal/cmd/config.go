package cmd

import (
	"errors"
	"log/slog"
	"os"

	"ctor-generator/internal/config"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Write a configuration file holding the current options"`
}

// ConfigInit scaffolds a configuration file from the effective options.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to .ctor-generator.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run is called by Kong when the config init command is executed.
func (c *ConfigInit) Run(logger *slog.Logger, opts config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = ".ctor-generator." + config.NormalizeFormat(c.Format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	if err := config.WriteFile(opts, dest, c.Format); err != nil {
		return err
	}

	logger.Info("wrote configuration", "path", dest)

	return nil
}
