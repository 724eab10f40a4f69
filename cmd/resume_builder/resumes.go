package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/migrate"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import resumes into the database",
	Long:  "Validates a resume document or export bundle, upgrades it to the current version and saves each resume. Resumes whose name already exists are skipped unless --allow-duplicates is set.",
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export resumes from the database as a bundle",
	RunE:  runExport,
}

var (
	importInput           string
	importAllowDuplicates bool
	exportOutput          string
	exportLimit           int
	databaseURLFlag       string
)

func init() {
	importCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to resume JSON or export bundle (required)")
	importCmd.Flags().BoolVar(&importAllowDuplicates, "allow-duplicates", false, "Import resumes whose name already exists")
	importCmd.Flags().StringVar(&databaseURLFlag, "db-url", "", "Database URL (default: DATABASE_URL)")
	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output path, or - for stdout (default: generated file name)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", db.DefaultListLimit, "Maximum number of resumes to export")
	exportCmd.Flags().StringVar(&databaseURLFlag, "db-url", "", "Database URL (default: DATABASE_URL)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func databaseURL() string {
	if databaseURLFlag != "" {
		return databaseURLFlag
	}
	return appConfig.DatabaseURL
}

//nolint:errcheck // writing to the terminal
func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := os.Stat(importInput); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", importInput)
	}

	database, err := openDatabase(ctx, databaseURL())
	if err != nil {
		return err
	}
	defer database.Close()

	existing, err := database.ListResumes(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list existing resumes: %w", err)
	}
	names := make([]string, len(existing))
	for i, r := range existing {
		names[i] = r.Name
	}

	previews, err := readImport(cmd, importInput, names)
	if err != nil {
		return err
	}

	imported := 0
	for _, p := range previews {
		if p.IsDuplicate && !importAllowDuplicates {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %q: a resume with this name already exists\n", p.Name)
			continue
		}
		resume := &types.Resume{Name: p.Name, Data: p.Data, CreatedAt: p.CreatedAt}
		if _, err := migrate.UpgradeResume(resume); err != nil {
			return err
		}
		if err := database.SaveResume(ctx, resume); err != nil {
			return fmt.Errorf("failed to save resume %q: %w", p.Name, err)
		}
		imported++
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d items) as %s\n", p.Name, p.ItemCount, resume.ID)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d of %d resume(s)\n", imported, len(previews))
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := openDatabase(ctx, databaseURL())
	if err != nil {
		return err
	}
	defer database.Close()

	summaries, err := database.ListResumes(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	if len(summaries) == 0 {
		return fmt.Errorf("no resumes to export")
	}

	resumes := make([]types.Resume, 0, len(summaries))
	for _, s := range summaries {
		r, err := database.GetResume(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to load resume %s: %w", s.ID, err)
		}
		if r != nil {
			resumes = append(resumes, *r)
		}
	}

	out, err := schemas.ExportResumes(resumes)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = schemas.ExportBundleFilename(resumes, time.Now())
	}
	if err := writeOutput(cmd, path, append(out, '\n')); err != nil {
		return err
	}
	if path != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d resume(s) to %s\n", len(resumes), path)
	}
	return nil
}
