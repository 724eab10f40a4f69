// Package rendering turns resume documents into Typst markup using per-section generators,
// layout formatters and template composers.
package rendering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
	"github.com/jonathan/resume-builder/internal/types"
)

// Template identifiers.
const (
	TemplateDefault = "default"
	TemplateCompact = "compact"
)

// DefaultFont is used when no font family is given.
const DefaultFont = "Calibri"

// rtlFallbackFont is appended to the font list for right-to-left documents.
const rtlFallbackFont = "Arial"

// Columns describes the column structure advertised by a template.
type Columns struct {
	TwoColumn       bool     `json:"isTwoColumn"`
	LeftRatio       string   `json:"leftColumnRatio,omitempty"`
	RightRatio      string   `json:"rightColumnRatio,omitempty"`
	MovableSections []string `json:"movableSections"`
}

// Plan lists the renderer keys a template will invoke, in output order.
// Two-column templates fill Left and Right; single-column templates fill Body.
type Plan struct {
	TemplateID string   `json:"templateId"`
	Left       []string `json:"left,omitempty"`
	Right      []string `json:"right,omitempty"`
	Body       []string `json:"body,omitempty"`
}

// Template composes a complete Typst document from a resume. Templates handed out by
// GetTemplate, LookupTemplate and Templates are copies; changing one does not affect
// later renders.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Columns     Columns `json:"layout"`

	layout  LayoutConfig
	plan    func(data *types.ResumeData) Plan
	compose func(data *types.ResumeData, font string, ctx *Context) string
}

// Parse renders data into a Typst document. It is pure and total: a nil or blank
// document still yields the page setup directives.
func (t *Template) Parse(data *types.ResumeData, font string, fontSize int, locale string, tr Translator) string {
	if data == nil {
		data = &types.ResumeData{}
	}
	if strings.TrimSpace(font) == "" {
		font = DefaultFont
	}
	ctx := NewContext(tr, fontSize, t.layout, locale)
	return t.compose(data, font, ctx)
}

// Layout returns the formatting options the template renders with.
func (t *Template) Layout() LayoutConfig {
	return t.layout
}

// Plan reports which sections the template renders and where.
func (t *Template) Plan(data *types.ResumeData) Plan {
	if data == nil {
		data = &types.ResumeData{}
	}
	return t.plan(data)
}

var registry = map[string]*Template{
	TemplateDefault: defaultTemplate,
	TemplateCompact: compactTemplate,
}

// clone copies t so callers cannot reach the registered template.
func (t *Template) clone() *Template {
	c := *t
	c.Columns.MovableSections = slices.Clone(t.Columns.MovableSections)
	return &c
}

// GetTemplate returns the template with id, or the default template.
func GetTemplate(id string) *Template {
	if t, ok := registry[id]; ok {
		return t.clone()
	}
	return defaultTemplate.clone()
}

// LookupTemplate returns the template with id or a *TemplateError.
func LookupTemplate(id string) (*Template, error) {
	if t, ok := registry[id]; ok {
		return t.clone(), nil
	}
	return nil, &TemplateError{ID: id, Message: "unknown template"}
}

// Templates lists the registered templates, default first.
func Templates() []*Template {
	return []*Template{defaultTemplate.clone(), compactTemplate.clone()}
}

// fontDirective sets the base font, adding a fallback font and rtl direction for RTL locales.
func fontDirective(font string, ctx *Context) string {
	font = typst.EscapeStringLiteral(font)
	if ctx.RTL() {
		return fmt.Sprintf(`#set text(font: ("%s", "%s"), size: %dpt, dir: rtl)`, font, rtlFallbackFont, ctx.FontSize())
	}
	return fmt.Sprintf(`#set text(font: ("%s"), size: %dpt)`, font, ctx.FontSize())
}

// renderAll runs the renderers named by keys and drops empty output.
func renderAll(keys []string, data *types.ResumeData, ctx *Context) []string {
	renderers := SectionRenderers()
	var out []string
	for _, key := range keys {
		render, ok := renderers[key]
		if !ok {
			continue
		}
		if s := render(data, ctx); !isBlank(s) {
			out = append(out, s)
		}
	}
	return out
}

func fullName(data *types.ResumeData) string {
	return strings.TrimSpace(typst.EscapeContentText(data.FirstName) + " " + typst.EscapeContentText(data.LastName))
}
