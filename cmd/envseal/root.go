package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "envseal",
	Short: "Share API-client workspaces without sharing their secrets",
	Long: `envseal exports a workspace to a JSON file with every environment secret
replaced by "******", and imports such files back, restoring each secret from
the live workspace, the local secret store, or a prompt.

Secrets are marked in an environment's data by an object holding them under
"_secret", or under the key named by "insomnia_export_secrets_key".`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.envseal/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringP("workspace", "w", "", "workspace id (default: the only workspace)")
	flags.StringP("format", "o", "table", "report format: table, json, yaml")
	flags.Bool("no-interactive", false, "never prompt; fail when a secret cannot be resolved")

	for _, name := range []string{"workspace", "format", "no-interactive"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".envseal"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("envseal")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	case errors.As(err, &notFound), os.IsNotExist(err):
	default:
		slog.Warn("failed to read config file", "error", err)
	}
}

// systemConfigPath returns the file the system config is loaded from.
func systemConfigPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".envseal", "config.yaml")
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// setupLogging installs a plain logger until the container replaces it
// with the scrubbing one.
func setupLogging() {
	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)
}
