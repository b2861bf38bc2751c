package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/config"
)

type InitCmd struct {
	Force       bool `help:"Delete an existing SQLite or JSON store before initializing."`
	WriteConfig bool `help:"Write the effective configuration to config.toml."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Force && ctx.Backend != cli.BackendPostgres {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized soberly storage at: %s\n", path)

	if c.WriteConfig {
		written, err := config.Write(ctx.ConfigDir, ctx.Config)
		if err != nil {
			return err
		}
		ctx.Printf("Wrote configuration to: %s\n", written)
	}
	return nil
}
