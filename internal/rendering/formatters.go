package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
)

// FormatSectionItems wraps each item in a spaced block when the config uses block spacing
// with a non-empty item spacing; otherwise it joins items with the configured separator.
func FormatSectionItems(items []string, config SectionsConfig) string {
	if config.Spacing == SpacingBlock && config.ItemSpacing != "" {
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "#block(above: 0em, below: %s)[%s]", config.ItemSpacing, item)
		}
		return b.String()
	}
	return strings.Join(items, config.JoinSeparator)
}

func contents(items []SectionContent) []string {
	var out []string
	for _, item := range items {
		if item.HasContent() {
			out = append(out, item.Content)
		}
	}
	return out
}

// FormatSocialLinks joins links horizontally with the separator, or stacks them
// vertically with item spacing when shown in the sidebar.
func FormatSocialLinks(items []SectionContent, config SocialLinksConfig) string {
	links := contents(items)
	if config.Orientation == OrientationHorizontal {
		return strings.Join(links, config.Separator)
	}

	itemSpacing := ""
	if config.Placement == LinksInSidebar {
		itemSpacing = typst.ItemsSpacing
	}
	return FormatSectionItems(links, SectionsConfig{Spacing: SpacingBlock, ItemSpacing: itemSpacing})
}

// joinEntries joins formatted entries with a blank line in two-column layouts,
// where block elements carry their own spacing, and with the join separator otherwise.
func joinEntries(entries []string, config LayoutConfig) string {
	if config.IsTwoColumn() {
		return strings.Join(entries, "\n\n")
	}
	return strings.Join(entries, config.Sections.JoinSeparator)
}

// FormatExperienceItems renders a sub-header, a date-and-link line and the achievements list per entry.
func FormatExperienceItems(items []SectionContent, config LayoutConfig, fontSize int) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		var b strings.Builder
		b.WriteString(typst.TemplateSubHeader(item.Title, fontSize))
		if item.HasDate() || item.HasContent() {
			b.WriteString("\n\n")
			b.WriteString(typst.TemplateDateWithLink(item.Date, item.Content, fontSize))
		}
		if item.HasAchievements() {
			if list := typst.BulletList(item.Achievements, ""); list != "" {
				b.WriteString("\n\n")
				b.WriteString(list)
			}
		}
		entries = append(entries, b.String())
	}
	return joinEntries(entries, config)
}

// FormatEducationItems renders a sub-header, a date line and the additional info per entry.
func FormatEducationItems(items []SectionContent, config LayoutConfig, fontSize int) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		var b strings.Builder
		b.WriteString(typst.TemplateSubHeader(item.Title, fontSize))
		if item.HasDate() {
			b.WriteString("\n\n")
			b.WriteString(typst.TemplateDate(item.Date, fontSize))
		}
		if item.HasAdditionalInfo() {
			b.WriteString("\n\n")
			b.WriteString(item.AdditionalInfo)
		}
		entries = append(entries, b.String())
	}
	return joinEntries(entries, config)
}

// FormatCertificatesItems renders a sub-header, a date-and-link line and the description per entry.
func FormatCertificatesItems(items []SectionContent, config LayoutConfig, fontSize int) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		var b strings.Builder
		b.WriteString(typst.TemplateSubHeader(item.Title, fontSize))
		if item.HasDate() || item.HasContent() {
			b.WriteString("\n\n")
			b.WriteString(typst.TemplateDateWithLink(item.Date, item.Content, fontSize))
		}
		if item.HasAdditionalInfo() {
			b.WriteString("\n\n")
			b.WriteString(item.AdditionalInfo)
		}
		entries = append(entries, b.String())
	}
	return joinEntries(entries, config)
}

// FormatProjectsItems concatenates title and description per project, wrapping each
// project in a spaced block when projects.itemSpacing is configured.
func FormatProjectsItems(items []SectionContent, config LayoutConfig) string {
	var entries []string
	for _, item := range items {
		var parts []string
		if item.HasTitle() {
			parts = append(parts, item.Title)
		}
		if item.HasContent() {
			parts = append(parts, item.Content)
		}
		if entry := strings.Join(parts, "\n\n"); !isBlank(entry) {
			entries = append(entries, entry)
		}
	}

	if config.Sections.Spacing == SpacingBlock && config.Projects.ItemSpacing != "" {
		var b strings.Builder
		for _, entry := range entries {
			fmt.Fprintf(&b, "#block(above: 0em, below: %s)[%s]", config.Projects.ItemSpacing, entry)
		}
		return b.String()
	}
	return strings.Join(entries, config.Sections.JoinSeparator)
}

// FormatSimpleItems formats the content of each item with block-or-joined spacing.
func FormatSimpleItems(items []SectionContent, config LayoutConfig) string {
	return FormatSectionItems(contents(items), config.Sections)
}

// WrapSection puts a header above body inside a spaced block.
// A blank body suppresses the whole section, header included.
func WrapSection(headerText, body string, fontSize int) string {
	if isBlank(body) {
		return ""
	}
	return fmt.Sprintf("#block(above: 0em, below: %s)[\n%s\n%s\n]", typst.SectionSpacing, typst.TemplateHeader(headerText, fontSize), body)
}
