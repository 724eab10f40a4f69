package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{StepMigrate, StepSettings, StepCompose, StepCompile, StepPersist}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryPrepare: {StepMigrate, StepSettings},
		CategoryRender:  {StepCompose, StepCompile},
		CategoryOutput:  {StepPersist},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			assert.Equal(t, category, StepRegistry[stepName].Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestPlanSatisfiesDependencies(t *testing.T) {
	for _, tc := range []struct{ compile, persist bool }{
		{false, false}, {true, false}, {false, true}, {true, true},
	} {
		completed := map[string]bool{}
		for _, step := range Plan(tc.compile, tc.persist) {
			require.NoError(t, ValidateDependencies(completed, step))
			completed[step] = true
		}
	}
}

func TestPlan(t *testing.T) {
	assert.Equal(t, []string{StepMigrate, StepSettings, StepCompose}, Plan(false, false))
	assert.Equal(t, []string{StepMigrate, StepSettings, StepCompose, StepCompile, StepPersist}, Plan(true, true))
}

func TestValidateDependencies_Missing(t *testing.T) {
	err := ValidateDependencies(map[string]bool{StepMigrate: true}, StepCompose)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, StepCompose, depErr.Step)
	assert.Equal(t, []string{StepSettings}, depErr.MissingDependencies)
	assert.Contains(t, err.Error(), "missing dependencies")
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := ValidateDependencies(nil, "unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}
