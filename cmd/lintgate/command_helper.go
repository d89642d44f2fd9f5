package main

import (
	"context"
	"log/slog"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/infrastructure/container"
	"github.com/reglet-dev/lintgate/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization:
// config loading (flags, LINTGATE_* environment, config file, defaults)
// and dependency injection.
func withContainer(a *app, handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		if err := bindFlags(cmd, a.viper); err != nil {
			return apperrors.NewConfigurationError("flags", "failed to bind flags", err)
		}
		cfg, err := system.NewConfigLoader(a.viper).Load(a.cfgFile)
		if err != nil {
			return apperrors.NewConfigurationError("config", "failed to load configuration", err)
		}
		if extra, _ := cmd.Flags().GetStringArray("extra-arg"); len(extra) > 0 {
			cfg.ExtraArgs = append(cfg.ExtraArgs, extra...)
		}
		logger.Debug("configuration loaded", "tool", cfg.Tool, "env_root", cfg.Environment.Root)

		c, err := container.New(container.Options{
			Config: cfg,
			Logger: logger,
			Stdout: a.stdout,
		})
		if err != nil {
			return err
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   cmd.Context(),
		}
		return handler(ctx, cmd, args)
	}
}
