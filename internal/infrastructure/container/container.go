// Package container provides dependency injection for the application.
package container

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/application/services"
	"github.com/reglet-dev/envseal/internal/infrastructure/filesystem"
	"github.com/reglet-dev/envseal/internal/infrastructure/host"
	"github.com/reglet-dev/envseal/internal/infrastructure/persistence/file"
	"github.com/reglet-dev/envseal/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/envseal/internal/infrastructure/persistence/sqlite"
	"github.com/reglet-dev/envseal/internal/infrastructure/redaction"
	"github.com/reglet-dev/envseal/internal/infrastructure/schema"
	"github.com/reglet-dev/envseal/internal/infrastructure/sensitivedata"
	"github.com/reglet-dev/envseal/internal/infrastructure/system"
	"github.com/reglet-dev/envseal/internal/infrastructure/terminal"
)

// Container holds all application dependencies.
type Container struct {
	exportUseCase *services.ExportWorkspaceUseCase
	importUseCase *services.ImportWorkspaceUseCase
	secretStore   *services.SecretStore
	workspaces    *host.WorkspaceStore
	sensitive     *sensitivedata.Provider
	systemCfg     *system.Config
	logger        *slog.Logger
	closers       []io.Closer
}

// Options configure the container.
type Options struct {
	// Config is the loaded system configuration; nil means defaults.
	Config *system.Config
	// Fs backs workspaces, stores and export files; nil means the OS.
	Fs afero.Fs
	// LogOutput receives scrubbed log records; nil means stderr.
	LogOutput io.Writer
	// Prompter and Dialogs override the terminal adapters when set.
	Prompter ports.Prompter
	Dialogs  ports.FileDialogs
	// FilePath answers every file dialog, for scripted runs.
	FilePath string
	LogLevel slog.Level
	// NonInteractive never prompts, even on a terminal.
	NonInteractive bool
}

// New creates a new dependency injection container.
func New(ctx context.Context, opts Options) (*Container, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = system.NewConfigLoader().Load(""); err != nil {
			return nil, err
		}
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	// Sensitive data protection, shared by logs and use cases
	var detector *redaction.Detector
	if cfg.Export.LeakScan || !cfg.Redaction.DisableGitleaks {
		d, err := redaction.NewDetector()
		if err != nil {
			return nil, err
		}
		detector = d
	}

	sensitive := sensitivedata.NewProvider()
	redactor, err := sensitivedata.NewWithProvider(sensitivedata.Config{
		Patterns:        cfg.Redaction.Patterns,
		Detector:        detector,
		DisableGitleaks: cfg.Redaction.DisableGitleaks,
	}, sensitive)
	if err != nil {
		return nil, apperrors.NewConfigurationError("redaction", "invalid pattern", err)
	}

	logger := slog.New(slog.NewTextHandler(sensitivedata.NewWriter(logOutput, redactor), &slog.HandlerOptions{
		Level: opts.LogLevel,
	}))

	c := &Container{
		sensitive: sensitive,
		systemCfg: cfg,
		logger:    logger,
	}

	// Store backend
	kv, err := c.openStore(ctx, fs, cfg.Store)
	if err != nil {
		return nil, err
	}
	c.secretStore = services.NewSecretStore(kv)

	// Host and operator adapters
	c.workspaces = host.NewWorkspaceStore(fs, cfg.DataDir)
	files := filesystem.New(fs)

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	interactive := !opts.NonInteractive && terminal.IsInteractive()

	prompter := opts.Prompter
	if prompter == nil {
		prompter = terminal.NewPrompter(
			terminal.WithInteractive(interactive),
			terminal.WithAccessible(cfg.UI.Accessible),
		)
	}

	dialogs := opts.Dialogs
	switch {
	case dialogs != nil:
	case opts.FilePath != "" || !interactive:
		dialogs = terminal.StaticDialogs{Path: opts.FilePath}
	default:
		dialogs = terminal.NewDialogs(fs, cfg.UI.Accessible)
	}

	// Only hand the use case a scanner when leak scanning is on
	var leakScanner ports.LeakScanner
	if cfg.Export.LeakScan {
		leakScanner = detector
	}

	// Wire up use cases
	c.exportUseCase = services.NewExportWorkspaceUseCase(
		c.workspaces,
		c.secretStore,
		dialogs,
		files,
		leakScanner,
		sensitive,
		cfg.Export.IncludePrivate,
		logger,
	)

	restorer := services.NewSecretRestorer(c.secretStore, prompter, cfg.Import.ConfirmAll, logger)
	c.importUseCase = services.NewImportWorkspaceUseCase(
		c.workspaces,
		c.workspaces,
		c.secretStore,
		restorer,
		dialogs,
		files,
		validator,
		sensitive,
		logger,
	)

	return c, nil
}

func (c *Container) openStore(ctx context.Context, fs afero.Fs, cfg system.StoreConfig) (ports.KeyValueStore, error) {
	switch cfg.Driver {
	case system.StoreDriverMemory:
		return memory.NewKeyValueStore(), nil
	case system.StoreDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, apperrors.NewConfigurationError("store", "cannot open sqlite store", err)
		}
		c.closers = append(c.closers, store)
		return store, nil
	case system.StoreDriverFile, "":
		return file.NewKeyValueStore(fs, cfg.Path), nil
	default:
		return nil, apperrors.NewConfigurationError("store", "unknown driver "+string(cfg.Driver), nil)
	}
}

// Close releases store handles.
func (c *Container) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ExportUseCase returns the export workspace use case.
func (c *Container) ExportUseCase() *services.ExportWorkspaceUseCase {
	return c.exportUseCase
}

// ImportUseCase returns the import workspace use case.
func (c *Container) ImportUseCase() *services.ImportWorkspaceUseCase {
	return c.importUseCase
}

// SecretStore returns the store bridge.
func (c *Container) SecretStore() *services.SecretStore {
	return c.secretStore
}

// Workspaces returns the host workspace adapter.
func (c *Container) Workspaces() *host.WorkspaceStore {
	return c.workspaces
}

// Sensitive returns the registry of plaintexts seen in this process.
func (c *Container) Sensitive() *sensitivedata.Provider {
	return c.sensitive
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the scrubbing logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
