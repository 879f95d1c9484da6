package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/infrastructure/container"
	"github.com/reglet-dev/envseal/internal/infrastructure/output"
	"github.com/reglet-dev/envseal/internal/infrastructure/sensitivedata"
	"github.com/reglet-dev/envseal/internal/infrastructure/system"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
	Formatter output.Formatter
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, logger creation, dependency injection.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := system.NewConfigLoader().Load(systemConfigPath())
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatterFactory().Create(viper.GetString("format"), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		filePath, _ := cmd.Flags().GetString("file")

		c, err := container.New(cmd.Context(), container.Options{
			Config:         cfg,
			LogOutput:      os.Stderr,
			LogLevel:       logLevel(),
			FilePath:       filePath,
			NonInteractive: viper.GetBool("no-interactive"),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer func() { _ = c.Close() }()

		slog.SetDefault(c.Logger())

		ctx := &CommandContext{
			Container: c,
			Logger:    c.Logger(),
			Context:   cmd.Context(),
			Formatter: formatter,
		}

		return sensitivedata.SafeError(handler(ctx, cmd, args), c.Sensitive())
	}
}

// resolveWorkspace picks the workspace from --workspace, ENVSEAL_WORKSPACE,
// the config file, or the only known workspace.
func (cc *CommandContext) resolveWorkspace() (ports.WorkspaceRef, error) {
	return cc.Container.Workspaces().Resolve(cc.Context, viper.GetString("workspace"))
}

// addFileFlag adds the --file flag that bypasses the file dialog.
func addFileFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("file", "f", "", usage)
}
