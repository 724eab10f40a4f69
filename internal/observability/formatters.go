// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocumentSummary outputs item counts for each populated section of a resume.
func (p *Printer) PrintDocumentSummary(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	if data.Position != "" {
		sb.WriteString(fmt.Sprintf("Position:  %s\n", data.Position))
	}
	sb.WriteString(fmt.Sprintf("Version:   %s\n", orDash(data.Version)))
	sb.WriteString("\n")

	counts := []struct {
		label string
		n     int
	}{
		{"Experiences", len(data.Experiences)},
		{"Internships", len(data.Internships)},
		{"Education", len(data.Education)},
		{"Volunteering", len(data.Volunteering)},
		{"Skills", len(data.Skills)},
		{"Projects", len(data.Projects)},
		{"Languages", len(data.Languages)},
		{"Certificates", len(data.Certificates)},
		{"Social links", len(data.SocialLinks)},
	}
	for _, c := range counts {
		if c.n > 0 {
			sb.WriteString(fmt.Sprintf("  • %-13s %d\n", c.label, c.n))
		}
	}

	p.printBox("RESUME DOCUMENT", sb.String())
}

// PrintRenderPlan outputs the sections a template will render and where.
func (p *Printer) PrintRenderPlan(plan rendering.Plan) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", plan.TemplateID))

	if len(plan.Left) > 0 || len(plan.Right) > 0 {
		sb.WriteString("\nLeft column:\n")
		writeList(&sb, plan.Left)
		sb.WriteString("\nRight column:\n")
		writeList(&sb, plan.Right)
	}
	if len(plan.Body) > 0 {
		sb.WriteString("\nBody:\n")
		writeList(&sb, plan.Body)
	}

	p.printBox("RENDER PLAN", sb.String())
}

// PrintMigrations outputs the upgrade steps applied to a document.
func (p *Printer) PrintMigrations(applied []string) {
	if len(applied) == 0 {
		return
	}
	var sb strings.Builder
	for _, name := range applied {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", name))
	}
	p.printBox("MIGRATIONS APPLIED", sb.String())
}

// PrintArtifact outputs a one-box summary of a produced file.
func (p *Printer) PrintArtifact(filename, format string, size int, elapsed time.Duration) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", filename))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", format))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", size))
	sb.WriteString(fmt.Sprintf("Elapsed:  %s\n", elapsed.Round(time.Millisecond)))
	p.printBox("OUTPUT", sb.String())
}

func writeList(sb *strings.Builder, items []string) {
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, items[i]))
	}
	if len(items) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-count))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
