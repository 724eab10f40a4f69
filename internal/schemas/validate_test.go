package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["font", "fontSize"],
  "properties": {
    "font": {"type": "string"},
    "fontSize": {"type": "integer", "minimum": 6}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "settings.schema.json", settingsSchema)
	jsonPath := writeFile(t, dir, "settings.json", `{"font": "Calibri", "fontSize": 12}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "settings.schema.json", settingsSchema)
	jsonPath := writeFile(t, dir, "settings.json", `{"font": "Calibri"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "settings.schema.json", settingsSchema)
	jsonPath := writeFile(t, dir, "settings.json", `{"font": "Calibri", "fontSize": "large"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "fontSize", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "settings.json", `{}`)

	err := ValidateJSON(filepath.Join(dir, "missing.schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "settings.schema.json", settingsSchema)

	err := ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "settings.schema.json", settingsSchema)
	jsonPath := writeFile(t, dir, "settings.json", `{"font": `)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(settingsSchema, `{"font": "Roboto", "fontSize": 10}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(settingsSchema, `{"font": "Roboto", "fontSize": 2}`)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "fontSize", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "(root)", Message: "font is required"},
			{Field: "fontSize", Message: "Invalid type"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. (root): font is required")
	assert.Contains(t, msg, "2. fontSize: Invalid type")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := &SchemaLoadError{Path: "x.json", Message: "boom", Cause: cause}
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to load schema x.json: boom")
}

func TestResolveSchemaPath(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeFile(t, dir, "custom.schema.json", settingsSchema)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer func() { _ = os.Chdir(wd) }()

	resolved := ResolveSchemaPath("custom.schema.json")
	assert.Equal(t, "custom.schema.json", filepath.Base(resolved))
	assert.True(t, filepath.IsAbs(resolved))

	assert.Empty(t, ResolveSchemaPath("nope.schema.json"))
}
