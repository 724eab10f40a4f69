// Package server provides the HTTP API for rendering resumes.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStoreUnavailable is returned by endpoints that need a database when none is configured.
var ErrStoreUnavailable = errors.New("resume store not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		invalid     *ErrValidation
		fields      validator.ValidationErrors
		templateErr *rendering.TemplateError
		initErr     *engine.InitError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &fields), errors.As(err, &templateErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNotReady), errors.Is(err, pipeline.ErrNoEngine),
		errors.Is(err, ErrStoreUnavailable), errors.As(err, &initErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator errors into "field: tag" pairs.
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err.Error()
	}
	msg := "invalid settings:"
	for i, f := range fields {
		if i > 0 {
			msg += ","
		}
		msg += fmt.Sprintf(" %s failed %q", f.Namespace(), f.Tag())
	}
	return msg
}
