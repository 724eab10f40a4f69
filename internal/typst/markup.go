package typst

import (
	"fmt"
	"strings"
)

// Spacing used between headers, sections and items.
const (
	HeaderSpacing  = "1em"
	SectionSpacing = "1.6em"
	ItemsSpacing   = "0.8em"
)

// DefaultLinkColor is the fill used for hyperlink text.
const DefaultLinkColor = "blue"

// Link renders a hyperlink with blue text. Returns "" if url or text is blank.
func Link(url, text string) string {
	return LinkWithColor(url, text, DefaultLinkColor)
}

// LinkWithColor renders a hyperlink whose text is filled with color.
func LinkWithColor(url, text, color string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.TrimSpace(text) == "" {
		return ""
	}
	if color == "" {
		color = DefaultLinkColor
	}
	return fmt.Sprintf(`#link("%s")[#text(fill: %s, "%s")]`, EscapeStringLiteral(url), color, EscapeStringLiteral(text))
}

// EmailLink renders a mailto: link showing the address.
func EmailLink(email string) string {
	email = EscapeStringLiteral(email)
	if email == "" {
		return ""
	}
	return fmt.Sprintf(`#link("mailto:%s")[#text(fill: blue, "%s")]`, email, email)
}

// ExternalLinkIcon renders a small arrow glyph linking to url.
func ExternalLinkIcon(url string) string {
	url = EscapeStringLiteral(url)
	if url == "" {
		return ""
	}
	return fmt.Sprintf(`#link("%s")[#text(size: 10pt, weight: "semibold", fill: blue)[↗]]`, url)
}

// SectionHeader renders a bold section title. size defaults to 16pt.
func SectionHeader(title, size string) string {
	title = EscapeStringLiteral(title)
	if title == "" {
		return ""
	}
	if size == "" {
		size = "16pt"
	}
	return fmt.Sprintf(`#block(below: %s, above: 0em)[#text("%s", size: %s, weight: "bold")]`, HeaderSpacing, title, size)
}

// SubHeader renders a bold sub-title. size defaults to 14pt.
func SubHeader(title, size string) string {
	title = EscapeStringLiteral(title)
	if title == "" {
		return ""
	}
	if size == "" {
		size = "14pt"
	}
	return fmt.Sprintf(`#block(below: 1em)[#text("%s", size: %s, weight: "bold")]`, title, size)
}

// TemplateHeader renders a section header two points above the document font size.
func TemplateHeader(text string, fontSize int) string {
	return SectionHeader(text, fmt.Sprintf("%dpt", fontSize+2))
}

// TemplateSubHeader renders an entry title at the document font size.
func TemplateSubHeader(text string, fontSize int) string {
	return fmt.Sprintf(`#block(below: 0.6em)[#text("%s", size: %dpt, weight: "bold")]`, EscapeStringLiteral(text), fontSize)
}

// TemplateDate renders a date line two points below the document font size.
// dateText is already markup and is embedded as is.
func TemplateDate(dateText string, fontSize int) string {
	return fmt.Sprintf(`#block(above: 0em, below: 0.6em)[#text(size: %dpt)[%s]]`, fontSize-2, dateText)
}

// TemplateDateWithLink renders a date line followed by a link fragment.
// Without a link it is identical to TemplateDate.
func TemplateDateWithLink(dateRange, link string, fontSize int) string {
	if link == "" {
		return TemplateDate(dateRange, fontSize)
	}
	return fmt.Sprintf(`#block(above: 0em, below: 0.6em)[#text(size: %dpt)[%s • %s]]`, fontSize-2, dateRange, link)
}

// BulletList renders non-blank items as a bulleted list. indent defaults to 1em.
// Returns "" when every item is blank.
func BulletList(items []string, indent string) string {
	if indent == "" {
		indent = "1em"
	}

	var lines []string
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		lines = append(lines, "- "+EscapeContentText(item))
	}
	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf("#set list(indent: %s)\n\n%s", indent, strings.Join(lines, "\n"))
}

// Grid lays out cells side by side. columns defaults to (1fr, 1fr) and gutter to 20pt.
func Grid(cells []string, columns, gutter string) string {
	if len(cells) == 0 {
		return ""
	}
	if columns == "" {
		columns = "(1fr, 1fr)"
	}
	if gutter == "" {
		gutter = "20pt"
	}

	wrapped := make([]string, len(cells))
	for i, cell := range cells {
		wrapped[i] = "[" + cell + "]"
	}

	return fmt.Sprintf("#grid(\n  columns: %s,\n  gutter: %s,\n  %s\n)", columns, gutter, strings.Join(wrapped, ",\n  "))
}

// LeftToRight forces left-to-right direction on content, used for phone numbers in RTL documents.
func LeftToRight(content string) string {
	return fmt.Sprintf("#text(dir: ltr)[%s]", content)
}
