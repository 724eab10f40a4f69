package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_MissingJSONFlag(t *testing.T) {
	_, _, err := executeCommand(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "json" not set`)
}

func TestValidateCommand_Resume(t *testing.T) {
	input := writeFile(t, "resume.json", sampleResume)

	stdout, _, err := executeCommand(t, "validate", "--json", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed: "+input+" (resume, 1 resume(s))")
	assert.Contains(t, stdout, "1. Jane Doe (2 items)")
}

func TestValidateCommand_Bundle(t *testing.T) {
	bundle := `[{"name": "Backend", "data": ` + sampleResume + `}, {"name": "Empty", "data": {}}]`
	input := writeFile(t, "bundle.json", bundle)

	stdout, _, err := executeCommand(t, "validate", "-j", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(export, 2 resume(s))")
	assert.Contains(t, stdout, "1. Backend (2 items)")
	assert.Contains(t, stdout, "2. Empty (0 items)")
}

func TestValidateCommand_Invalid(t *testing.T) {
	input := writeFile(t, "resume.json", `{"sectionPlacement": {"skills": "middle"}}`)

	_, stderr, err := executeCommand(t, "validate", "--json", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, stderr, "sectionPlacement.skills")
}

func TestValidateCommand_CustomSchema(t *testing.T) {
	input := writeFile(t, "resume.json", sampleResume)

	stdout, _, err := executeCommand(t, "validate", "--schema", "schemas/resume.schema.json", "--json", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")
	assert.Contains(t, stdout, "resume.schema.json")

	schema := writeFile(t, "schema.json", `{"type": "object", "required": ["name"]}`)
	_, _, err = executeCommand(t, "validate", "--schema", schema, "--json", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCommand_SchemaNotFound(t *testing.T) {
	input := writeFile(t, "resume.json", sampleResume)

	_, _, err := executeCommand(t, "validate", "--schema", filepath.Join(t.TempDir(), "missing.json"), "--json", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")
}
