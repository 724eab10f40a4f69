package typst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeContentText_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeContentText(""))
	assert.Equal(t, "", EscapeContentText("   \n\t"))
}

func TestEscapeContentText_NoSpecialCharacters(t *testing.T) {
	text := "Built a payments platform in Go"
	assert.Equal(t, text, EscapeContentText(text))
}

func TestEscapeContentText_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Acme", EscapeContentText("  Acme \n"))
}

func TestEscapeContentText_SpecialCharacters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`a\b`, `a\\b`},
		{"cost $100", `cost \$100`},
		{`say "hi"`, `say \"hi\"`},
		{"issue #123", `issue \#123`},
		{"{x}", `\{x\}`},
		{"[x]", `\[x\]`},
		{"<tag>", `\<tag\>`},
		{"~approx", `\~approx`},
		{"x^2", `x\^2`},
		{"snake_case", `snake\_case`},
		{"*bold*", `\*bold\*`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeContentText(tt.input))
		})
	}
}

func TestEscapeContentText_SmartQuotes(t *testing.T) {
	assert.Equal(t, `\"quoted\" it's`, EscapeContentText("“quoted” it’s"))
}

func TestEscapeContentText_UnicodePassesThrough(t *testing.T) {
	text := "résumé مهندس 工程师"
	assert.Equal(t, text, EscapeContentText(text))
}

func TestEscapeContentText_NotIdempotent(t *testing.T) {
	once := EscapeContentText("#1")
	twice := EscapeContentText(once)
	assert.Equal(t, `\#1`, once)
	assert.Equal(t, `\\\#1`, twice)
}

// unescape reverses EscapeContentText for the round-trip check below.
func unescape(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func TestEscapeContentText_RoundTrip(t *testing.T) {
	input := `\ $ " # { } [ ] < > ~ ^ _ * “smart” ‘single’`
	escaped := EscapeContentText(input)

	special := `\$"#{}[]<>~^_*`
	runes := []rune(escaped)
	for i, r := range runes {
		if !strings.ContainsRune(special, r) || r == '\\' {
			continue
		}
		// Count preceding backslashes; an odd count means r is escaped.
		n := 0
		for j := i - 1; j >= 0 && runes[j] == '\\'; j-- {
			n++
		}
		assert.Equal(t, 1, n%2, "character %q at %d is unescaped", r, i)
	}

	assert.Equal(t, `\ $ " # { } [ ] < > ~ ^ _ * "smart" 'single'`, unescape(escaped))
}

func TestEscapeStringLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Senior Engineer", "Senior Engineer"},
		{"hash untouched", "C# developer", "C# developer"},
		{"quote", `The "best"`, `The \"best\"`},
		{"backslash", `C:\path`, `C:\\path`},
		{"brackets untouched", "[draft] *v2*", "[draft] *v2*"},
		{"smart quotes", "“Go”", `\"Go\"`},
		{"trims", "  Acme  ", "Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeStringLiteral(tt.input))
		})
	}
}
