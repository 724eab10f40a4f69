package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// runnerOptions selects the optional collaborators of a CLI runner.
type runnerOptions struct {
	engine *engine.Loader
	store  pipeline.ArtifactStore
	strict bool
}

// newEngine builds a typst loader from the application config.
func newEngine() *engine.Loader {
	opts := appConfig.EngineOptions()
	opts.Logger = logger
	return engine.NewLoader(opts)
}

// newRunner builds a pipeline runner from the application config. The verbose
// printer writes to the command's stderr so stdout stays usable for output.
func newRunner(cmd *cobra.Command, ro runnerOptions) (*pipeline.Runner, error) {
	opts := pipeline.Options{
		Logger:          logger,
		Defaults:        appConfig.Settings(),
		StrictTemplates: ro.strict,
		Store:           ro.store,
	}
	if ro.engine != nil {
		opts.Engine = ro.engine
	}
	if verbose {
		opts.Printer = observability.NewPrinter(cmd.ErrOrStderr())
	}
	return pipeline.NewRunner(opts)
}

// openDatabase connects to the configured database and ensures its schema.
func openDatabase(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set and --db-url not provided")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// readImport reads and validates a resume document or export bundle.
func readImport(cmd *cobra.Command, path string, existingNames []string) ([]schemas.ImportPreview, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	previews, err := schemas.ParseImport(content, existingNames)
	if err != nil {
		printValidationErrors(cmd.ErrOrStderr(), err)
		return nil, fmt.Errorf("invalid resume document %s: %w", path, err)
	}
	if len(previews) == 0 {
		return nil, fmt.Errorf("no resumes found in %s", path)
	}
	return previews, nil
}

//nolint:errcheck // writing to the terminal
func printValidationErrors(w io.Writer, err error) {
	var ve *schemas.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	fmt.Fprintln(w, "Validation failed:")
	for i, fe := range ve.Errors {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
}

// writeOutput writes content to path, creating parent directories. A path of
// "-" writes to the command's stdout.
func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func previewData(previews []schemas.ImportPreview) []types.ResumeData {
	docs := make([]types.ResumeData, len(previews))
	for i, p := range previews {
		docs[i] = p.Data
	}
	return docs
}
