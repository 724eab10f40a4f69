package rendering

import "strings"

// Translator resolves a translation key for a locale chosen by the caller.
type Translator func(key string) string

// Translation keys used by the generators and section renderers.
const (
	KeyAt        = "template.at"
	KeySeparator = "template.separator"
	KeyGrade     = "template.grade"
	KeyPresent   = "template.present"
	KeyFrom      = "template.from"
)

var englishPhrases = map[string]string{
	KeyAt:        " at ",
	KeySeparator: ", ",
	KeyGrade:     "Grade:",
	KeyPresent:   "Present",
	KeyFrom:      " from ",

	"forms.personalInfo.title":       "Personal Information",
	"forms.personalInfo.socialLinks": "Links",
	"forms.personalInfo.summary":     "Profile",
	"forms.experience.title":         "Employment History",
	"forms.internships.title":        "Internships",
	"forms.education.title":          "Education",
	"forms.volunteering.title":       "Volunteering",
	"forms.projects.title":           "Projects",
	"forms.skills.title":             "Skills",
	"forms.languages.title":          "Languages",
	"forms.certificates.title":       "Certificates",
}

// EnglishTranslator is used when no translator is supplied.
func EnglishTranslator(key string) string {
	if v, ok := englishPhrases[key]; ok {
		return v
	}
	return key
}

// Context is the immutable bundle threaded through every section renderer for one document.
type Context struct {
	t        Translator
	fontSize int
	layout   LayoutConfig
	locale   string
}

// NewContext builds a Context. A nil translator falls back to EnglishTranslator
// and a non-positive font size to DefaultFontSize.
func NewContext(t Translator, fontSize int, layout LayoutConfig, locale string) *Context {
	if t == nil {
		t = EnglishTranslator
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if locale == "" {
		locale = "en"
	}
	return &Context{t: t, fontSize: fontSize, layout: layout, locale: locale}
}

// DefaultFontSize is the base font size in points.
const DefaultFontSize = 12

// FontSize returns the base font size in points.
func (c *Context) FontSize() int {
	return c.fontSize
}

// Layout returns the template layout configuration.
func (c *Context) Layout() LayoutConfig {
	return c.layout
}

// Locale returns the document locale.
func (c *Context) Locale() string {
	return c.locale
}

// T translates key.
func (c *Context) T(key string) string {
	return c.t(key)
}

// Phrase translates key and returns fallback when the translator has no entry,
// signalled by an empty result or the key echoed back.
func (c *Context) Phrase(key, fallback string) string {
	v := c.t(key)
	if v == "" || v == key {
		return fallback
	}
	return v
}

// RTL reports whether the context locale is written right to left.
func (c *Context) RTL() bool {
	return IsRTLLocale(c.locale)
}

// proficiencyKey maps "Native Speaker" to "proficiency.native_speaker".
func proficiencyKey(value string) string {
	return "proficiency." + strings.Join(strings.Fields(strings.ToLower(value)), "_")
}
