package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeCRUD_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	data := types.NewResumeData()
	data.FirstName = "Jane"
	data.LastName = "Doe"
	r := &types.Resume{Name: "Jane - backend", Data: data}

	require.NoError(t, db.SaveResume(ctx, r))
	require.NotEqual(t, uuid.Nil, r.ID)
	defer func() { _ = db.DeleteResume(ctx, r.ID) }()

	got, err := db.GetResume(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane - backend", got.Name)
	assert.Equal(t, "Jane", got.Data.FirstName)
	assert.Equal(t, types.DefaultSectionOrder(), got.Data.SectionOrder)

	r.Name = "Jane - platform"
	require.NoError(t, db.SaveResume(ctx, r))
	got, err = db.GetResume(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane - platform", got.Name)

	list, err := db.ListResumes(ctx, 0)
	require.NoError(t, err)
	found := false
	for _, s := range list {
		if s.ID == r.ID {
			found = true
		}
	}
	assert.True(t, found)

	missing, err := db.GetResume(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRenderArtifacts_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	r := &types.Resume{Name: "artifact owner", Data: types.NewResumeData()}
	require.NoError(t, db.SaveResume(ctx, r))
	defer func() { _ = db.DeleteResume(ctx, r.ID) }()

	a := &RenderArtifact{
		ResumeID:   &r.ID,
		TemplateID: "default",
		Locale:     "en",
		Format:     "pdf",
		Markup:     "#set page(margin: 1.2cm)",
		Output:     []byte("%PDF-1.7"),
	}
	require.NoError(t, db.SaveRenderArtifact(ctx, a))

	got, err := db.GetRenderArtifact(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.Markup, got.Markup)
	assert.Equal(t, a.Output, got.Output)

	list, err := db.ListRenderArtifacts(ctx, r.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Output)
}
