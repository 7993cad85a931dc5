package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/config"
	"github.com/civiclink/civiclink/internal/store"
)

var (
	// cfg is the effective configuration, loaded before any command runs.
	cfg *config.Config

	logger  *slog.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "civiclink",
	Short: "Personal advisor for local civic problems",
	Long: "CivicLink — describe problems in your community, get grounded advice,\n" +
		"see which topics you raise most, and learn with quizzes built from your conversations.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides CIVICLINK_DB env var)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/civiclink/config.yaml)")
	pf.String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter or mock")
	pf.String("region", "", "Region to use for this run (e.g. Kagawa)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(communityCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration, applies flag overrides and installs the
// logger. The TUI owns the terminal, so it logs to a file instead of
// stderr.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(config.Options{Path: path})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loaded.Merge(flagOverrides(cmd))
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	level, _ := config.ParseLevel(cfg.LogLevel)

	w, err := logSink(cmd)
	if err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// logSink picks where logs go. Subcommands log to stderr. The bare root
// command starts the TUI, which owns the terminal, so it appends to
// civiclink.log in the data dir.
func logSink(cmd *cobra.Command) (io.Writer, error) {
	if cmd.HasParent() {
		return os.Stderr, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "civiclink.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	return f, nil
}

// flagOverrides collects the persistent flags into a Config that is merged
// over every other source.
func flagOverrides(cmd *cobra.Command) *config.Config {
	var c config.Config
	c.DBPath, _ = cmd.Flags().GetString("db")
	c.Region, _ = cmd.Flags().GetString("region")
	c.LogLevel, _ = cmd.Flags().GetString("log-level")
	c.LLM.Provider, _ = cmd.Flags().GetString("provider")
	return &c
}

// resolveDBPath returns the database path using --db flag or config
// (highest priority), then CIVICLINK_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
