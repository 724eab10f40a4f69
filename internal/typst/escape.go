// Package typst provides escaping and small markup builders for emitting Typst documents.
package typst

import "strings"

// EscapeContentText escapes text embedded in a Typst content block [...].
// Smart quotes are normalized to straight quotes and surrounding whitespace is trimmed.
// Special characters: \ $ " # { } [ ] < > ~ ^ _ *
//
// The result is not idempotent: escaping twice doubles the backslashes.
func EscapeContentText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		r = normalizeQuote(r)
		switch r {
		case '\\', '$', '"', '#', '{', '}', '[', ']', '<', '>', '~', '^', '_', '*':
			result.WriteByte('\\')
			result.WriteRune(r)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeStringLiteral escapes text embedded in a quoted Typst string "...".
// Only the backslash and the double quote are meaningful there; # is left alone.
func EscapeStringLiteral(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		r = normalizeQuote(r)
		switch r {
		case '\\', '"':
			result.WriteByte('\\')
			result.WriteRune(r)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

func normalizeQuote(r rune) rune {
	switch r {
	case '“', '”', '„', '‟':
		return '"'
	case '‘', '’', '‚', '‛':
		return '\''
	}
	return r
}
