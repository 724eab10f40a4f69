package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to Typst markup, PDF or SVG",
	Long: `Renders a resume JSON document (or one entry of an export bundle) with the selected template.
Typst markup needs nothing else; PDF and SVG output require the typst CLI.`,
	RunE: runRender,
}

var (
	renderInput    string
	renderOutput   string
	renderOutDir   string
	renderFormat   string
	renderTemplate string
	renderFont     string
	renderFontSize int
	renderLocale   string
	renderIndex    int
	renderAll      bool
	renderStrict   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume JSON or export bundle (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output path, or - for stdout (default: generated file name)")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", ".", "Output directory for --all")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "typ", "Output format: typ, txt, pdf or svg")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (default from config)")
	renderCmd.Flags().StringVar(&renderFont, "font", "", "Font family (default from config)")
	renderCmd.Flags().IntVar(&renderFontSize, "font-size", 0, "Base font size in points (default from config)")
	renderCmd.Flags().StringVarP(&renderLocale, "locale", "l", "", "Locale for headers and labels (default: document language, then config)")
	renderCmd.Flags().IntVar(&renderIndex, "index", 0, "Bundle entry to render")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every bundle entry into --out-dir")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "Fail on unknown template ids instead of using the default template")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := pipeline.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	previews, err := readImport(cmd, renderInput, nil)
	if err != nil {
		return err
	}

	ro := runnerOptions{strict: renderStrict}
	if format.Compiled() {
		ro.engine = newEngine()
	}
	runner, err := newRunner(cmd, ro)
	if err != nil {
		return err
	}

	settings := types.Settings{
		Font:       renderFont,
		FontSize:   renderFontSize,
		Locale:     renderLocale,
		TemplateID: renderTemplate,
	}

	if renderAll {
		return renderBundle(ctx, cmd, runner, previewData(previews), settings, format)
	}

	if renderIndex < 0 || renderIndex >= len(previews) {
		return fmt.Errorf("--index %d out of range: %s holds %d resume(s)", renderIndex, renderInput, len(previews))
	}

	res, err := runner.Export(ctx, pipeline.Request{
		Data:     previews[renderIndex].Data,
		Settings: settings,
		Format:   format,
	})
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	out := renderOutput
	if out == "" {
		out = res.Filename
	}
	if err := writeOutput(cmd, out, res.Output); err != nil {
		return err
	}
	if out != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered %s resume (%s, %s)\n", res.Format, res.Settings.TemplateID, res.Locale)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
	}
	return nil
}

// renderBundle renders every document concurrently and writes each result into
// renderOutDir. Repeated file names get the entry index as a prefix.
func renderBundle(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, docs []types.ResumeData, settings types.Settings, format pipeline.Format) error {
	reqs := make([]pipeline.Request, len(docs))
	for i, d := range docs {
		reqs[i] = pipeline.Request{Data: d, Settings: settings, Format: format}
	}

	results, err := runner.GenerateBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("failed to render bundle: %w", err)
	}

	seen := make(map[string]bool, len(results))
	for i, res := range results {
		name := res.Filename
		if seen[name] {
			name = fmt.Sprintf("%d_%s", i, name)
		}
		seen[name] = true

		path := filepath.Join(renderOutDir, name)
		if err := writeOutput(cmd, path, res.Output); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", path)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered %d resume(s)\n", len(results))
	return nil
}
