package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "resume", ID: "abc"}
	assert.Equal(t, "resume not found: abc", err.Error())
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "format", Message: "unsupported"}
	assert.Equal(t, "validation error: format - unsupported", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	settings := types.Settings{Font: "Calibri", FontSize: 99, Locale: "en"}
	invalidSettings := settings.Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrNotFound{Resource: "resume", ID: "1"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "format"}, http.StatusBadRequest},
		{"settings", fmt.Errorf("invalid settings: %w", invalidSettings), http.StatusUnprocessableEntity},
		{"template", &rendering.TemplateError{ID: "x", Message: "unknown template"}, http.StatusUnprocessableEntity},
		{"not ready", fmt.Errorf("compile: %w", engine.ErrNotReady), http.StatusServiceUnavailable},
		{"no engine", pipeline.ErrNoEngine, http.StatusServiceUnavailable},
		{"no store", ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"init", &engine.InitError{Message: "typst not found"}, http.StatusServiceUnavailable},
		{"compile", &engine.CompileError{Message: "boom"}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	settings := types.Settings{Font: "Calibri", FontSize: 99, Locale: "en"}
	msg := validationMessage(fmt.Errorf("invalid settings: %w", settings.Validate()))
	assert.Contains(t, msg, "Settings.FontSize")
	assert.Contains(t, msg, `"max"`)

	assert.Equal(t, "plain", validationMessage(errors.New("plain")))
}
