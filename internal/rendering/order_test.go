package rendering

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSortSections_ByRank(t *testing.T) {
	data := &types.ResumeData{SectionOrder: map[string]int{
		types.SectionEducation:  0,
		types.SectionExperience: 1,
		types.SectionSkills:     2,
	}}

	got := sortSections([]string{types.SectionSkills, types.SectionExperience, types.SectionEducation}, data, nil)
	assert.Equal(t, []string{types.SectionEducation, types.SectionExperience, types.SectionSkills}, got)
}

func TestSortSections_TiesUseCanonicalOrder(t *testing.T) {
	data := &types.ResumeData{SectionOrder: map[string]int{
		types.SectionProjects:   3,
		types.SectionSkills:     3,
		types.SectionExperience: 3,
	}}

	got := sortSections([]string{types.SectionProjects, types.SectionSkills, types.SectionExperience}, data, nil)
	assert.Equal(t, []string{types.SectionExperience, types.SectionSkills, types.SectionProjects}, got)
}

func TestSortSections_MissingRanksUseFallbackThenLast(t *testing.T) {
	data := &types.ResumeData{SectionOrder: map[string]int{types.SectionLanguages: 2}}
	fallback := map[string]int{types.SectionSkills: 1}

	got := sortSections([]string{types.SectionCertificates, types.SectionLanguages, types.SectionSkills}, data, fallback)
	assert.Equal(t, []string{types.SectionSkills, types.SectionLanguages, types.SectionCertificates}, got)
}

func TestSortSections_DoesNotMutateInput(t *testing.T) {
	in := []string{types.SectionSkills, types.SectionEducation}
	_ = sortSections(in, &types.ResumeData{}, nil)
	assert.Equal(t, []string{types.SectionSkills, types.SectionEducation}, in)
}

func TestMoveSection(t *testing.T) {
	order := types.DefaultSectionOrder()

	up := MoveSectionUp(order, types.SectionExperience)
	assert.Equal(t, 1, up[types.SectionExperience])
	assert.Equal(t, 2, up[types.SectionEducation])
	assert.Equal(t, 2, order[types.SectionExperience], "input is not modified")

	down := MoveSectionDown(order, types.SectionLanguages)
	assert.Equal(t, 9, down[types.SectionLanguages])
	assert.Equal(t, 8, down[types.SectionCertificates])
}

func TestMoveSection_NoNeighbour(t *testing.T) {
	order := types.DefaultSectionOrder()

	assert.Equal(t, order, MoveSectionDown(order, types.SectionCertificates))
	assert.Equal(t, order, MoveSectionUp(order, types.SectionSummary))
	assert.Equal(t, order, MoveSectionUp(order, "hobbies"))
}
