package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/spf13/cobra"
)

// errSilent marks failures whose message was already printed.
var errSilent = errors.New("")

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata is a workbench for deterministic finite automata",
	Long: `Automata defines, validates, runs and explores DFAs stored as JSON or YAML
documents, from the command line or through its HTTP and MCP servers.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

// app is the resolved configuration shared by every command.
var app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./automata.yaml if present)")
	rootCmd.PersistentFlags().String("dir", "", "Directory of the file store (overrides store.dir)")
	rootCmd.PersistentFlags().String("store", "", "Store driver: file, memory or redis (overrides store.driver)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides log_level)")
}

func loadApp(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, resolved, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: path})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dir") {
		cfg.Store.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Driver, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logging.NewTo(cmd.ErrOrStderr(), level, format)
	if resolved != "" {
		app.logger.Debug("config loaded", "path", resolved)
	}
	return nil
}
