package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintDocumentSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := &types.ResumeData{
		Version:     "v2",
		FirstName:   "Jane",
		LastName:    "Doe",
		Position:    "Engineer",
		Experiences: []types.Experience{{Company: "Acme"}, {Company: "Globex"}},
		Skills:      []types.SkillItem{{Title: "Go"}},
	}

	p.PrintDocumentSummary(data)
	output := buf.String()

	assert.Contains(t, output, "RESUME DOCUMENT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Engineer")
	assert.Contains(t, output, "Experiences   2")
	assert.Contains(t, output, "Skills        1")
	assert.NotContains(t, output, "Certificates")
}

func TestPrintDocumentSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocumentSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRenderPlan_TwoColumn(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRenderPlan(rendering.Plan{
		TemplateID: "default",
		Left:       []string{"experience", "education"},
		Right:      []string{"contactInfo"},
	})
	output := buf.String()

	assert.Contains(t, output, "RENDER PLAN")
	assert.Contains(t, output, "Template: default")
	assert.Contains(t, output, "1. experience")
	assert.Contains(t, output, "2. education")
	assert.Contains(t, output, "1. contactInfo")
	assert.NotContains(t, output, "Body:")
}

func TestPrintRenderPlan_Body(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRenderPlan(rendering.Plan{TemplateID: "compact", Body: []string{"skills"}})

	output := buf.String()
	assert.Contains(t, output, "Body:")
	assert.NotContains(t, output, "Left column:")
}

func TestPrintMigrations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMigrations(nil)
	assert.Empty(t, buf.String())

	p.PrintMigrations([]string{"introduce-internships"})
	assert.Contains(t, buf.String(), "✓ introduce-internships")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact("Jane_Doe_resume.pdf", "pdf", 2048, 1500*time.Millisecond)

	output := buf.String()
	assert.Contains(t, output, "Jane_Doe_resume.pdf")
	assert.Contains(t, output, "2048 bytes")
	assert.Contains(t, output, "1.5s")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
