package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-builder/internal/types"
	schemafiles "github.com/jonathan/resume-builder/schemas"
)

// DocumentKind identifies the shape of an imported JSON document.
type DocumentKind string

const (
	// KindResume is a single resume document.
	KindResume DocumentKind = "resume"
	// KindExport is an array of exported resumes.
	KindExport DocumentKind = "export"
)

var (
	compileOnce  sync.Once
	resumeSchema *gojsonschema.Schema
	exportSchema *gojsonschema.Schema
	compileErr   error
)

func compiledSchemas() (*gojsonschema.Schema, *gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		resumeRaw, err := schemafiles.FS.ReadFile(schemafiles.ResumeSchema)
		if err != nil {
			compileErr = &SchemaLoadError{Path: schemafiles.ResumeSchema, Message: "embedded schema missing", Cause: err}
			return
		}
		exportRaw, err := schemafiles.FS.ReadFile(schemafiles.ExportSchema)
		if err != nil {
			compileErr = &SchemaLoadError{Path: schemafiles.ExportSchema, Message: "embedded schema missing", Cause: err}
			return
		}

		resumeSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeRaw))
		if err != nil {
			compileErr = &SchemaLoadError{Path: schemafiles.ResumeSchema, Message: "invalid schema", Cause: err}
			return
		}

		sl := gojsonschema.NewSchemaLoader()
		if err := sl.AddSchemas(gojsonschema.NewBytesLoader(resumeRaw)); err != nil {
			compileErr = &SchemaLoadError{Path: schemafiles.ResumeSchema, Message: "failed to register schema", Cause: err}
			return
		}
		exportSchema, err = sl.Compile(gojsonschema.NewBytesLoader(exportRaw))
		if err != nil {
			compileErr = &SchemaLoadError{Path: schemafiles.ExportSchema, Message: "invalid schema", Cause: err}
		}
	})
	return resumeSchema, exportSchema, compileErr
}

func rootError(message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: message}}}
}

// ValidateResumeJSON validates data as either a single resume document or an
// array of exported resumes and reports which one it is.
func ValidateResumeJSON(data []byte) (DocumentKind, error) {
	if !json.Valid(data) {
		return "", rootError("invalid JSON")
	}

	resume, export, err := compiledSchemas()
	if err != nil {
		return "", err
	}

	var kind DocumentKind
	var schema *gojsonschema.Schema
	switch firstByte(data) {
	case '{':
		kind, schema = KindResume, resume
	case '[':
		kind, schema = KindExport, export
	default:
		return "", rootError("expected a resume object or an array of exported resumes")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return "", fmt.Errorf("failed to validate document: %w", err)
	}
	if err := resultError(result); err != nil {
		return "", err
	}
	return kind, nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// ExportedResume is one entry of an export bundle.
type ExportedResume struct {
	Name      string           `json:"name"`
	Data      types.ResumeData `json:"data"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ImportPreview describes a resume found in an import file.
type ImportPreview struct {
	Name        string           `json:"name"`
	Data        types.ResumeData `json:"data"`
	CreatedAt   time.Time        `json:"createdAt,omitempty"`
	UpdatedAt   time.Time        `json:"updatedAt,omitempty"`
	ItemCount   int              `json:"itemCount"`
	IsDuplicate bool             `json:"isDuplicate"`
}

// ParseImport validates data and returns a preview per resume. Names matching
// existingNames case-insensitively are flagged as duplicates.
func ParseImport(data []byte, existingNames []string) ([]ImportPreview, error) {
	kind, err := ValidateResumeJSON(data)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(existingNames))
	for _, n := range existingNames {
		existing[strings.ToLower(n)] = true
	}

	var entries []ExportedResume
	if kind == KindResume {
		var doc types.ResumeData
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode resume: %w", err)
		}
		entries = []ExportedResume{{Name: defaultResumeName(&doc), Data: doc}}
	} else if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode export bundle: %w", err)
	}

	previews := make([]ImportPreview, 0, len(entries))
	for _, e := range entries {
		previews = append(previews, ImportPreview{
			Name:        e.Name,
			Data:        e.Data,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
			ItemCount:   ItemCount(&e.Data),
			IsDuplicate: existing[strings.ToLower(e.Name)],
		})
	}
	return previews, nil
}

// ItemCount totals the entries of the list sections shown in an import preview.
func ItemCount(d *types.ResumeData) int {
	return len(d.Experiences) + len(d.Education) + len(d.Skills) + len(d.Projects) +
		len(d.Languages) + len(d.Volunteering) + len(d.Certificates)
}

func defaultResumeName(d *types.ResumeData) string {
	if name := strings.TrimSpace(d.FirstName + " " + d.LastName); name != "" {
		return name
	}
	return "Imported resume"
}

// ExportResumes encodes resumes as an indented export bundle.
func ExportResumes(resumes []types.Resume) ([]byte, error) {
	bundle := make([]ExportedResume, 0, len(resumes))
	for _, r := range resumes {
		bundle = append(bundle, ExportedResume{
			Name:      r.Name,
			Data:      r.Data,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export bundle: %w", err)
	}
	return out, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportBundleFilename names an export file: resume-{name}-{date}.json for a single
// resume, resumes-export-{date}.json otherwise.
func ExportBundleFilename(resumes []types.Resume, now time.Time) string {
	date := now.Format("2006-01-02")
	if len(resumes) == 1 {
		name := whitespaceRun.ReplaceAllString(strings.ToLower(resumes[0].Name), "-")
		return fmt.Sprintf("resume-%s-%s.json", name, date)
	}
	return fmt.Sprintf("resumes-export-%s.json", date)
}
