package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
	"github.com/jonathan/resume-builder/internal/types"
)

// compactTemplate is the single-column layout with a grid header.
var compactTemplate = &Template{
	ID:          TemplateCompact,
	Name:        "Compact",
	Description: "Single column template for comprehensive resumes with more information",
	Columns: Columns{
		TwoColumn:       false,
		MovableSections: []string{},
	},
	layout:  CompactLayoutConfig(),
	plan:    planCompact,
	compose: composeCompact,
}

// compactBodySections are the sections flowing under the header. Contact details,
// links and the summary live in the header itself.
var compactBodySections = []string{
	types.SectionEducation,
	types.SectionExperience,
	types.SectionInternships,
	types.SectionSkills,
	types.SectionProjects,
	types.SectionVolunteering,
	types.SectionLanguages,
	types.SectionCertificates,
}

func planCompact(data *types.ResumeData) Plan {
	return Plan{
		TemplateID: TemplateCompact,
		Body:       sortSections(compactBodySections, data, nil),
	}
}

// spacedRow returns 0em for the first row of a header column and 0.8em after.
func spacedRow(rows []string) string {
	if len(rows) > 0 {
		return "0.8em"
	}
	return "0em"
}

func compactHeaderLeft(data *types.ResumeData, ctx *Context) []string {
	fs := ctx.FontSize()
	rows := []string{fmt.Sprintf(`#text(size: %dpt, weight: "bold")[%s]`, fs+12, fullName(data))}

	if position := typst.EscapeContentText(data.Position); position != "" {
		rows = append(rows, fmt.Sprintf("#block(above: 0.8em)[#text(size: %dpt)[%s]]", fs+2, position))
	}
	if links := RenderSocialLinks(data, ctx); links != "" {
		rows = append(rows, fmt.Sprintf("#block(above: %s)[#text(size: %dpt)[%s]]", spacedRow(rows), fs-1, links))
	}
	return rows
}

func compactHeaderRight(data *types.ResumeData, ctx *Context) []string {
	fs := ctx.FontSize()
	var rows []string

	if email := typst.EmailLink(data.Email); email != "" {
		rows = append(rows, fmt.Sprintf("#block(above: 0em)[#text(size: %dpt)[%s]]", fs-1, email))
	}
	if phone := typst.EscapeContentText(data.Phone); phone != "" {
		rows = append(rows, fmt.Sprintf("#block(above: %s)[#text(size: %dpt, dir: ltr)[%s]]", spacedRow(rows), fs-1, phone))
	}
	if location := typst.EscapeContentText(data.Location); location != "" {
		rows = append(rows, fmt.Sprintf("#block(above: %s)[#text(size: %dpt)[%s]]", spacedRow(rows), fs-1, location))
	}
	return rows
}

func compactHeader(data *types.ResumeData, ctx *Context) string {
	alignment := "left, left"
	if ctx.RTL() {
		alignment = "right, right"
	}

	lines := []string{
		"#grid(",
		"    columns: (6fr, 4fr),",
		"    column-gutter: 20pt,",
		fmt.Sprintf("    align: (%s),", alignment),
		"    [",
	}
	for _, row := range compactHeaderLeft(data, ctx) {
		lines = append(lines, "        "+row)
	}
	lines = append(lines, "    ],", "    [")
	for _, row := range compactHeaderRight(data, ctx) {
		lines = append(lines, "        "+row)
	}
	lines = append(lines,
		"    ]",
		")",
		"#block(above: 1em, below: 1em)[#line(length: 100%, stroke: 1pt + black)]",
	)

	if summary := typst.EscapeContentText(data.Summary); summary != "" {
		lines = append(lines, fmt.Sprintf("#block(above: 0em, below: %s)[#text(size: %dpt)[%s]]", typst.SectionSpacing, ctx.FontSize(), summary))
	}
	return strings.Join(lines, "\n")
}

func composeCompact(data *types.ResumeData, font string, ctx *Context) string {
	plan := planCompact(data)

	content := compactHeader(data, ctx)
	if body := strings.Join(renderAll(plan.Body, data, ctx), "\n\n"); body != "" {
		content += "\n\n" + body
	}

	return fmt.Sprintf("#set page(margin: 1cm)\n%s\n#set par(leading: 0.4em)\n%s\n#pagebreak(weak: true)", fontDirective(font, ctx), content)
}
