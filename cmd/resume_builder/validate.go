package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume document or export bundle",
	Long: `Validates a JSON file against the embedded resume schemas, or against --schema when given.
Reports the resumes found and how many entries each holds.`,
	RunE: runValidate,
}

var (
	validateSchemaFile string
	validateJSONFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to a JSON Schema file (default: embedded resume schemas)")
	validateCmd.Flags().StringVarP(&validateJSONFile, "json", "j", "", "Path to JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

//nolint:errcheck // writing to the terminal
func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if validateSchemaFile != "" {
		schemaPath := schemas.ResolveSchemaPath(validateSchemaFile)
		if schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", validateSchemaFile)
		}
		if err := schemas.ValidateJSON(schemaPath, validateJSONFile); err != nil {
			printValidationErrors(cmd.ErrOrStderr(), err)
			return fmt.Errorf("%s: %w", validateJSONFile, err)
		}
		fmt.Fprintf(out, "Validation passed: %s matches %s\n", validateJSONFile, schemaPath)
		return nil
	}

	content, err := os.ReadFile(validateJSONFile)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	kind, err := schemas.ValidateResumeJSON(content)
	if err != nil {
		printValidationErrors(cmd.ErrOrStderr(), err)
		return fmt.Errorf("%s: %w", validateJSONFile, err)
	}
	previews, err := schemas.ParseImport(content, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Validation passed: %s (%s, %d resume(s))\n", validateJSONFile, kind, len(previews))
	for i, p := range previews {
		fmt.Fprintf(out, "  %d. %s (%d items)\n", i+1, p.Name, p.ItemCount)
	}
	return nil
}
