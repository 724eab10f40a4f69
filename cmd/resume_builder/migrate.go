package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/migrate"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade resume documents to the current version",
	Long: fmt.Sprintf(`Applies the versioned upgrade steps to a resume document or export bundle and writes
the result. Documents already at %s are written unchanged.`, migrate.CurrentVersion),
	RunE: runMigrate,
}

var (
	migrateInput  string
	migrateOutput string
	migrateDryRun bool
)

func init() {
	migrateCmd.Flags().StringVarP(&migrateInput, "in", "i", "", "Path to resume JSON or export bundle (required)")
	migrateCmd.Flags().StringVarP(&migrateOutput, "out", "o", "-", "Output path, or - for stdout")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Report the upgrade steps without writing output")

	if err := migrateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(migrateCmd)
}

//nolint:errcheck // writing to the terminal
func runMigrate(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(migrateInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	kind, err := schemas.ValidateResumeJSON(content)
	if err != nil {
		printValidationErrors(cmd.ErrOrStderr(), err)
		return fmt.Errorf("invalid resume document %s: %w", migrateInput, err)
	}
	previews, err := schemas.ParseImport(content, nil)
	if err != nil {
		return err
	}

	resumes := make([]types.Resume, len(previews))
	for i, p := range previews {
		resumes[i] = types.Resume{Name: p.Name, Data: p.Data, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
		applied, err := migrate.UpgradeResume(&resumes[i])
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			logger.Info("already current", "resume", p.Name, "version", migrate.CurrentVersion)
			continue
		}
		logger.Info("upgraded", "resume", p.Name, "steps", applied)
		if migrateDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", p.Name, applied)
		}
	}
	if migrateDryRun {
		return nil
	}

	var out []byte
	if kind == schemas.KindResume {
		out, err = json.MarshalIndent(resumes[0].Data, "", "  ")
	} else {
		out, err = schemas.ExportResumes(resumes)
	}
	if err != nil {
		return fmt.Errorf("failed to encode migrated document: %w", err)
	}
	return writeOutput(cmd, migrateOutput, append(out, '\n'))
}
