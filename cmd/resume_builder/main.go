// Package main provides the resume_builder CLI: rendering resumes to Typst markup,
// PDF or SVG, validating and migrating resume documents, and serving the HTTP API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

var (
	configPath string
	verbose    bool

	// appConfig and logger are set by setup before any command runs.
	appConfig = config.Defaults()
	logger    = log.New(io.Discard)
)

var rootCmd = &cobra.Command{
	Use:               "resume_builder",
	Short:             "Resume Builder renders resume documents with Typst",
	Long:              "Resume Builder turns structured resume JSON into Typst markup, compiles it to PDF or SVG, and serves the same rendering over a REST API.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	appConfig = cfg
	if cfg.Verbose {
		verbose = true
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

// loadAppConfig reads the optional config file, applies environment overrides,
// validates the result and fills the remaining fields with defaults.
func loadAppConfig(path string) (config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// newLogger creates a logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
