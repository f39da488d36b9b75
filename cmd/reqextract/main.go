// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reqextract CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/reqextract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from log.level before any subcommand runs.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rootCmd is the base command for the reqextract CLI.
var rootCmd = &cobra.Command{
	Use:   "reqextract",
	Short: "Extract candidate requirement lines from PDF documents",
	Long: `reqextract reads the text of every page of a PDF, keeps the lines that
look like numbered or bulleted list items, removes duplicates, and writes
the candidate list and the full page text to two files.

Runs can also be recorded in a local SQLite catalog and searched later
with the catalog subcommands.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, map[string]string{"log.level": "log-level"}); err != nil {
			return err
		}
		l, err := newLogger(viper.GetString("log.level"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reqextract.yaml or ~/.config/reqextract/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: debug, info, warn, or error")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reqextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reqextract"))
		}
	}

	viper.SetEnvPrefix("REQEXTRACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "warning: could not read config file:", err)
	}
}

// setDefaults registers every configuration key so environment variables
// are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("extract.input", d.Extract.Input)
	v.SetDefault("extract.backend", string(d.Extract.Backend))
	v.SetDefault("extract.on_page_error", string(d.Extract.OnPageError))
	v.SetDefault("match.bullets", d.Match.Bullets)
	v.SetDefault("match.unicode_form", string(d.Match.UnicodeForm))
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.candidates_file", d.Output.CandidatesFile)
	v.SetDefault("output.fulltext_file", d.Output.FullTextFile)
	v.SetDefault("output.report", d.Output.Report)
	v.SetDefault("catalog.enabled", d.Catalog.Enabled)
	v.SetDefault("catalog.dir", d.Catalog.Dir)
	v.SetDefault("catalog.max_results", d.Catalog.MaxResults)
	v.SetDefault("log.level", "warn")
}

// bindFlags binds config keys to the named flags of the running command.
// Binding happens per invocation because several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		var f *pflag.Flag
		if f = cmd.Flags().Lookup(name); f == nil {
			f = cmd.InheritedFlags().Lookup(name)
		}
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig decodes and validates the merged configuration.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: use debug, info, warn, or error", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
