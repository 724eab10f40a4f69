package engine

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{" SVG ", FormatSVG, false},
		{"png", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
}

func TestTypstCLI_MissingBinary(t *testing.T) {
	c := &TypstCLI{Binary: "typst-does-not-exist-here"}
	_, err := c.Probe(context.Background())

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Contains(t, initErr.Message, "not found in PATH")
}

func TestTypstCLI_Compile(t *testing.T) {
	if _, err := exec.LookPath("typst"); err != nil {
		t.Skip("typst not available, skipping compilation test")
	}

	c := &TypstCLI{}
	pdf, err := c.Compile(context.Background(), "= Hello", FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	svg, err := c.Compile(context.Background(), "= Hello", FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestTypstCLI_CompileInvalidMarkup(t *testing.T) {
	if _, err := exec.LookPath("typst"); err != nil {
		t.Skip("typst not available, skipping compilation test")
	}

	c := &TypstCLI{}
	_, err := c.Compile(context.Background(), "#text(", FormatPDF)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.NotEmpty(t, ce.LogOutput)
}

func TestNewLoader_UsesCompilerAsProber(t *testing.T) {
	c := &TypstCLI{Binary: "typst-does-not-exist-here"}
	l := NewLoader(Options{Compiler: c})

	err := l.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, l.State().Error, "typst-does-not-exist-here")
}
