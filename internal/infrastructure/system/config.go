// Package system loads the envseal system configuration (~/.envseal/config.yaml).
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
)

// StoreDriver selects the key-value store backend.
type StoreDriver string

const (
	// StoreDriverFile keeps entries in a YAML file.
	StoreDriverFile StoreDriver = "file"
	// StoreDriverSQLite keeps entries in a SQLite database.
	StoreDriverSQLite StoreDriver = "sqlite"
	// StoreDriverMemory keeps entries for the lifetime of the process.
	StoreDriverMemory StoreDriver = "memory"
)

// Config represents the system configuration file.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Store     StoreConfig     `yaml:"store"`
	Redaction RedactionConfig `yaml:"redaction"`
	Export    ExportConfig    `yaml:"export"`
	Import    ImportConfig    `yaml:"import"`
	UI        UIConfig        `yaml:"ui"`
}

// StoreConfig configures where secrets and dialog paths are persisted.
type StoreConfig struct {
	Driver StoreDriver `yaml:"driver"`
	// Path of the store file or database; defaults under DataDir.
	Path string `yaml:"path"`
}

// ExportConfig configures the export action.
type ExportConfig struct {
	IncludePrivate bool `yaml:"include_private"`
	LeakScan       bool `yaml:"leak_scan"`
}

// ImportConfig configures the import action.
type ImportConfig struct {
	// ConfirmAll prompts for every secret with the known value pre-filled.
	ConfirmAll bool `yaml:"confirm_all"`
}

// RedactionConfig configures log scrubbing.
type RedactionConfig struct {
	Patterns        []string `yaml:"patterns"`
	DisableGitleaks bool     `yaml:"disable_gitleaks"`
}

// UIConfig configures terminal interaction.
type UIConfig struct {
	Accessible bool `yaml:"accessible"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct {
	home string
}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	home, _ := os.UserHomeDir()
	return &ConfigLoader{home: home}
}

// DefaultDataDir returns ~/.envseal, or .envseal when the home directory is unknown.
func (l *ConfigLoader) DefaultDataDir() string {
	if l.home == "" {
		return ".envseal"
	}
	return filepath.Join(l.home, ".envseal")
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: StoreDriverFile,
		},
		Export: ExportConfig{
			LeakScan: true,
		},
		Redaction: RedactionConfig{
			Patterns: []string{},
		},
	}
}

// Load loads the system configuration from path on top of DefaultConfig.
// A missing file yields the defaults. Relative and ~ paths are resolved and
// unset paths are derived from the data directory.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	//nolint:gosec // G304: path is the user-provided config file
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, apperrors.NewConfigurationError("system", "failed to read system config", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfigurationError("system", "failed to parse system config", err)
		}
	}

	if err := l.finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *ConfigLoader) finalize(cfg *Config) error {
	if cfg.DataDir == "" {
		cfg.DataDir = l.DefaultDataDir()
	}
	cfg.DataDir = l.expand(cfg.DataDir)

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverFile
	}
	switch cfg.Store.Driver {
	case StoreDriverFile:
		if cfg.Store.Path == "" {
			cfg.Store.Path = filepath.Join(cfg.DataDir, "store.yaml")
		}
	case StoreDriverSQLite:
		if cfg.Store.Path == "" {
			cfg.Store.Path = filepath.Join(cfg.DataDir, "store.db")
		}
	case StoreDriverMemory:
	default:
		return apperrors.NewConfigurationError("store", fmt.Sprintf("unknown driver %q (want file, sqlite or memory)", cfg.Store.Driver), nil)
	}
	cfg.Store.Path = l.expand(cfg.Store.Path)

	return nil
}

// expand resolves a leading ~ against the home directory.
func (l *ConfigLoader) expand(path string) string {
	if l.home == "" || path == "" {
		return path
	}
	if path == "~" {
		return l.home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(l.home, rest)
	}
	return path
}
