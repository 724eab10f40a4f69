package pipeline

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		data *types.ResumeData
		ext  string
		want string
	}{
		{"full", &types.ResumeData{FirstName: "Jane", LastName: "Doe", Position: "Engineer"}, "pdf", "Jane_Doe_Engineer_resume.pdf"},
		{"no position", &types.ResumeData{FirstName: "Jane", LastName: "Doe"}, "svg", "Jane_Doe_resume.svg"},
		{"no first name", &types.ResumeData{LastName: "Doe"}, "typ", "Resume_Doe_resume.typ"},
		{"blank", &types.ResumeData{FirstName: "  "}, "txt", "Resume_resume.txt"},
		{"nil", nil, "pdf", "Resume_resume.pdf"},
		{"separators", &types.ResumeData{FirstName: "Jane", Position: "Dev/Ops"}, "pdf", "Jane_Dev-Ops_resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFilename(tt.data, tt.ext))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatTypst,
		"typ":   FormatTypst,
		"typst": FormatTypst,
		"TXT":   FormatText,
		" pdf ": FormatPDF,
		"svg":   FormatSVG,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestFormat_Properties(t *testing.T) {
	assert.True(t, FormatPDF.Compiled())
	assert.True(t, FormatSVG.Compiled())
	assert.False(t, FormatTypst.Compiled())
	assert.False(t, Format("docx").Valid())
	assert.Equal(t, "typ", FormatTypst.Extension())
}
