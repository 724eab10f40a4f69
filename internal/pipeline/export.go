package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/types"
)

// Format is an export format.
type Format string

const (
	FormatTypst Format = "typ"
	FormatText  Format = "txt"
	FormatPDF   Format = "pdf"
	FormatSVG   Format = "svg"
)

// Formats lists every supported export format.
var Formats = []Format{FormatTypst, FormatText, FormatPDF, FormatSVG}

// ParseFormat maps a user supplied name to a Format. Blank selects Typst markup.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTypst, nil
	}
	if f == "typst" {
		return FormatTypst, nil
	}
	if !f.Valid() {
		return "", fmt.Errorf("unsupported format %q (want one of typ, txt, pdf, svg)", s)
	}
	return f, nil
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Compiled reports whether the format requires the typst engine.
func (f Format) Compiled() bool {
	return f == FormatPDF || f == FormatSVG
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f.Compiled() {
		return engine.Format(f).ContentType()
	}
	return "text/plain; charset=utf-8"
}

// ExportFilename builds "{first}_{last}_{position}_resume.{ext}", using "Resume" when
// the first name is blank and dropping other blank parts.
func ExportFilename(data *types.ResumeData, ext string) string {
	first := "Resume"
	var last, position string
	if data != nil {
		if s := filenamePart(data.FirstName); s != "" {
			first = s
		}
		last = filenamePart(data.LastName)
		position = filenamePart(data.Position)
	}

	var parts []string
	for _, p := range []string{first, last, position, "resume"} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_") + "." + ext
}

// filenamePart trims s and replaces path separators.
func filenamePart(s string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(s))
}
