package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveRenderArtifact stores generated markup and its compiled output
func (db *DB) SaveRenderArtifact(ctx context.Context, a *RenderArtifact) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO render_artifacts (id, resume_id, template_id, locale, format, markup, output, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.ResumeID, a.TemplateID, a.Locale, a.Format, a.Markup, a.Output, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save render artifact: %w", err)
	}
	return nil
}

// GetRenderArtifact retrieves an artifact by ID. It returns nil when no row exists.
func (db *DB) GetRenderArtifact(ctx context.Context, id uuid.UUID) (*RenderArtifact, error) {
	var a RenderArtifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, template_id, locale, format, markup, output, created_at
		 FROM render_artifacts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.ResumeID, &a.TemplateID, &a.Locale, &a.Format, &a.Markup, &a.Output, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get render artifact: %w", err)
	}
	return &a, nil
}

// ListRenderArtifacts returns the artifacts of a resume, newest first, without compiled output
func (db *DB) ListRenderArtifacts(ctx context.Context, resumeID uuid.UUID, limit int) ([]RenderArtifact, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, template_id, locale, format, markup, created_at
		 FROM render_artifacts WHERE resume_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		resumeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list render artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []RenderArtifact
	for rows.Next() {
		var a RenderArtifact
		if err := rows.Scan(&a.ID, &a.ResumeID, &a.TemplateID, &a.Locale, &a.Format, &a.Markup, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list render artifacts: %w", err)
	}
	return artifacts, nil
}
