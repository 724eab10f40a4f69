package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBinary is the typst executable looked up on PATH.
	DefaultBinary = "typst"
	// DefaultCompileTimeout bounds a single typst invocation.
	DefaultCompileTimeout = 30 * time.Second
)

// Format is an output kind produced by the engine.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "application/pdf"
}

// Compiler turns markup into an output document.
type Compiler interface {
	Compile(ctx context.Context, markup string, format Format) ([]byte, error)
}

// Prober checks that the compiler can run and reports its version.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}

// TypstCLI compiles markup with the typst command line tool.
type TypstCLI struct {
	Binary    string
	FontPaths []string
	Timeout   time.Duration
}

func (c *TypstCLI) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

// Probe runs `typst --version`.
func (c *TypstCLI) Probe(ctx context.Context) (string, error) {
	path, err := exec.LookPath(c.binary())
	if err != nil {
		return "", &InitError{
			Message: fmt.Sprintf("%s not found in PATH. Please install typst (https://typst.app)", c.binary()),
			Cause:   err,
		}
	}

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", &InitError{Message: "failed to query typst version", Cause: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// Compile writes markup into a temporary directory and runs `typst compile`.
// For SVG output only the first page is returned.
func (c *TypstCLI) Compile(ctx context.Context, markup string, format Format) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "typst-compile-*")
	if err != nil {
		return nil, &CompileError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer os.RemoveAll(workDir)

	input := filepath.Join(workDir, "main.typ")
	if err := os.WriteFile(input, []byte(markup), 0644); err != nil {
		return nil, &CompileError{Message: "failed to write markup", Cause: err}
	}

	output := filepath.Join(workDir, "out.pdf")
	produced := output
	if format == FormatSVG {
		output = filepath.Join(workDir, "page-{p}.svg")
		produced = filepath.Join(workDir, "page-1.svg")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCompileTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"compile", "--format", string(format)}
	for _, p := range c.FontPaths {
		args = append(args, "--font-path", p)
	}
	args = append(args, input, output)

	cmd := exec.CommandContext(ctx, c.binary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()
	if runErr != nil {
		return nil, &CompileError{
			Message:   "typst compilation failed",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	data, err := os.ReadFile(produced)
	if err != nil {
		return nil, &CompileError{
			Message:   fmt.Sprintf("typst compilation failed: %s was not generated", filepath.Base(produced)),
			LogOutput: logOutput,
			Cause:     err,
		}
	}
	return data, nil
}
