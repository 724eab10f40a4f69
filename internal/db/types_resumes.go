package db

import (
	"time"

	"github.com/google/uuid"
)

// ResumeSummary is a resume row without its document body
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RenderArtifact is a generated markup document, optionally with its compiled output
type RenderArtifact struct {
	ID         uuid.UUID  `json:"id"`
	ResumeID   *uuid.UUID `json:"resumeId,omitempty"` // Nil for ad-hoc renders
	TemplateID string     `json:"templateId"`
	Locale     string     `json:"locale"`
	Format     string     `json:"format"`
	Markup     string     `json:"markup"`
	Output     []byte     `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DefaultListLimit caps list queries when no positive limit is given
const DefaultListLimit = 50
