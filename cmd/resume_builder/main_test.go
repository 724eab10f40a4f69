package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	for _, env := range []string{"RESUME_FONT", "RESUME_FONT_SIZE", "RESUME_TEMPLATE", "PORT"} {
		t.Setenv(env, "")
	}

	cfg, err := loadAppConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Calibri", cfg.Font)
	assert.Equal(t, 12, cfg.FontSize)
	assert.Equal(t, "default", cfg.Template)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadAppConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, "config.json", `{"font": "Inter", "font_size": 11, "template": "compact"}`)
	t.Setenv("RESUME_FONT", "Roboto")
	t.Setenv("RESUME_LOCALE", "de")
	t.Setenv("RESUME_FONT_SIZE", "")
	t.Setenv("RESUME_TEMPLATE", "")

	cfg, err := loadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Roboto", cfg.Font)
	assert.Equal(t, 11, cfg.FontSize)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "compact", cfg.Template)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	t.Setenv("RESUME_TEMPLATE", "")
	path := writeFile(t, "config.json", `{"template": "fancy"}`)

	_, err := loadAppConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fancy")
}

func TestRootCommand_ConfigApplied(t *testing.T) {
	t.Setenv("RESUME_FONT", "")
	t.Setenv("RESUME_FONT_SIZE", "")
	path := writeFile(t, "config.json", `{"font": "Inter", "locale": "fr"}`)
	input := writeFile(t, "resume.json", sampleResume)

	stdout, _, err := executeCommand(t, "--config", path, "render", "--in", input, "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, `#set text(font: ("Inter")`)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Setenv("RESUME_FONT_SIZE", "")
	path := writeFile(t, "config.json", `{"font_size": 100}`)

	_, _, err := executeCommand(t, "--config", path, "templates")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font_size")
}

func TestImportCommand_NoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	input := writeFile(t, "resume.json", sampleResume)

	_, _, err := executeCommand(t, "import", "--in", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")
}

func TestExportCommand_NoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, _, err := executeCommand(t, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")
}
