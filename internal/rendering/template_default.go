package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
	"github.com/jonathan/resume-builder/internal/types"
)

// defaultTemplate is the two-column layout: header and main sections on the left,
// contact, links and movable sections on the right.
var defaultTemplate = &Template{
	ID:          TemplateDefault,
	Name:        "Default",
	Description: "A clean and professional resume template",
	Columns: Columns{
		TwoColumn:       true,
		LeftRatio:       leftColumnRatio,
		RightRatio:      rightColumnRatio,
		MovableSections: types.MovableSections,
	},
	layout:  DefaultLayoutConfig(),
	plan:    planDefault,
	compose: composeDefault,
}

const (
	leftColumnRatio  = "7fr"
	rightColumnRatio = "3fr"
)

var fixedLeftSections = []string{types.SectionExperience, types.SectionInternships, types.SectionEducation}

// Ranks used when a document has no sectionOrder entry for a section.
var (
	legacyLeftRanks = map[string]int{
		types.SectionExperience:   1,
		types.SectionInternships:  2,
		types.SectionEducation:    3,
		types.SectionSkills:       4,
		types.SectionProjects:     5,
		types.SectionLanguages:    6,
		types.SectionVolunteering: 7,
		types.SectionCertificates: 8,
	}
	legacyRightRanks = map[string]int{
		types.SectionSkills:       1,
		types.SectionProjects:     2,
		types.SectionLanguages:    3,
		types.SectionVolunteering: 4,
		types.SectionCertificates: 5,
	}
)

func planDefault(data *types.ResumeData) Plan {
	left := append([]string(nil), fixedLeftSections...)
	var right []string
	for _, section := range types.MovableSections {
		if data.PlacementOf(section) == types.PlacementLeft {
			left = append(left, section)
		} else {
			right = append(right, section)
		}
	}

	return Plan{
		TemplateID: TemplateDefault,
		Left:       sortSections(left, data, legacyLeftRanks),
		Right:      append([]string{RendererContactInfo, RendererSocialLinks}, sortSections(right, data, legacyRightRanks)...),
	}
}

func defaultHeader(data *types.ResumeData, ctx *Context) string {
	var positionBlock string
	if position := typst.EscapeContentText(data.Position); position != "" {
		positionBlock = fmt.Sprintf("#block(above: 0em, below: %s)[%s]", typst.SectionSpacing, position)
	}
	return fmt.Sprintf("= %s\n%s\n%s", fullName(data), positionBlock, RenderProfile(data, ctx))
}

func composeDefault(data *types.ResumeData, font string, ctx *Context) string {
	plan := planDefault(data)

	leftContent := strings.Join(renderAll(plan.Left, data, ctx), "\n\n")
	rightContent := strings.Join(renderAll(plan.Right, data, ctx), "\n\n")
	headerAndLeft := defaultHeader(data, ctx) + "\n" + leftContent

	columns := fmt.Sprintf("(%s, %s)", leftColumnRatio, rightColumnRatio)
	grid := typst.Grid([]string{headerAndLeft, rightContent}, columns, "")

	return fmt.Sprintf("#set page(margin: 1.2cm)\n%s\n%s\n#pagebreak(weak: true)", fontDirective(font, ctx), grid)
}
