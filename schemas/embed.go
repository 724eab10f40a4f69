// Package schemas embeds the JSON Schemas for resume documents and export bundles.
package schemas

import "embed"

// Schema file names
const (
	ResumeSchema = "resume.schema.json"
	ExportSchema = "resume_export.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
