package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveResume inserts or replaces a resume. A nil ID is assigned a new one.
func (db *DB) SaveResume(ctx context.Context, r *types.Resume) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	data, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal resume data: %w", err)
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	var serverID *string
	if r.ServerID != "" {
		serverID = &r.ServerID
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, name, data, server_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET name = $2, data = $3, server_id = $4, updated_at = $6`,
		r.ID, r.Name, data, serverID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID. It returns nil when no row exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var r types.Resume
	var data []byte
	var serverID *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, data, server_id, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &data, &serverID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(data, &r.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	if serverID != nil {
		r.ServerID = *serverID
	}
	return &r, nil
}

// ListResumes returns the most recently updated resumes first
func (db *DB) ListResumes(ctx context.Context, limit int) ([]ResumeSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at
		 FROM resumes ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []ResumeSummary
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// DeleteResume removes a resume and its artifacts
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
