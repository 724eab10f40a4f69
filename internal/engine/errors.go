package engine

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by Render before initialization has succeeded.
var ErrNotReady = errors.New("typst not ready")

// CompileError represents a failed typst compilation.
type CompileError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// InitError represents a failed engine initialization.
type InitError struct {
	Message string
	Cause   error
}

func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InitError) Unwrap() error {
	return e.Cause
}
