// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the health-report CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/logging"
	"github.com/pdiddy/health-report/internal/secrets"
	"github.com/pdiddy/health-report/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the merged configuration: defaults, config file, env, flags.
	cfg types.Config

	// logger is built from cfg.Log before any subcommand runs.
	logger = zap.NewNop()

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the health-report CLI.
var rootCmd = &cobra.Command{
	Use:   "health-report",
	Short: "Extract and route business-health report content",
	Long: `health-report turns the markup produced by upstream analysis stages into
scored content items routed to report deliverables.

Use extract to pull items from one document or a manifest of documents,
store to keep runs in a local SQLite database and export them, and chart to
render aggregated scores into chart configurations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l

		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./health-report.yaml or ~/.config/health-report/health-report.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("secrets-dir", ".secrets", "directory of credential files")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("secrets_dir", pf.Lookup("secrets-dir"))

	viper.SetDefault("registry.timeout", "10s")
	viper.SetDefault("registry.user_agent", "health-report/"+version)
	viper.SetDefault("registry.max_retries", 5)
	viper.SetDefault("extract.workers", 4)
	viper.SetDefault("extract.index_stride", 1000)
	viper.SetDefault("store.dir", "store")
	viper.SetDefault("store.max_results", 50)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("health-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "health-report"))
		}
	}

	viper.SetEnvPrefix("HEALTH_REPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "reading config:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
