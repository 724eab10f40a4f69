// Package i18n loads the embedded translation catalogs and builds per-locale translators.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FallbackLocale is used when a requested locale has no catalog.
const FallbackLocale = "en"

//go:embed locales/*.yaml
var localeFiles embed.FS

// Catalog holds flattened translation keys ("forms.skills.title") per locale.
type Catalog struct {
	messages map[string]map[string]string
	locales  []string
	matcher  language.Matcher
}

// LoadError reports a catalog file that could not be parsed.
type LoadError struct {
	File  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load locale catalog %s: %v", e.File, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load parses every embedded catalog.
func Load() (*Catalog, error) {
	entries, err := localeFiles.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locale catalogs: %w", err)
	}

	sources := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		data, err := localeFiles.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, &LoadError{File: entry.Name(), Cause: err}
		}
		sources[strings.TrimSuffix(entry.Name(), ".yaml")] = data
	}

	return NewCatalog(sources)
}

// NewCatalog builds a catalog from raw YAML documents keyed by locale.
func NewCatalog(sources map[string][]byte) (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string, len(sources))}

	for locale, data := range sources {
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, &LoadError{File: locale + ".yaml", Cause: err}
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[strings.ToLower(locale)] = flat
	}

	for locale := range c.messages {
		c.locales = append(c.locales, locale)
	}
	sort.Strings(c.locales)

	// The fallback locale goes first so the matcher prefers it on weak matches.
	tags := []language.Tag{language.Make(FallbackLocale)}
	for _, locale := range c.locales {
		if locale != FallbackLocale {
			tags = append(tags, language.Make(locale))
		}
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Locales returns the locales with a catalog, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.locales))
	copy(out, c.locales)
	return out
}

// Negotiate picks the catalog locale serving the requested one:
// exact match, then best language match, then FallbackLocale.
func (c *Catalog) Negotiate(locale string) string {
	if own, ok := c.own(locale); ok {
		return own
	}

	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return FallbackLocale
	}

	_, index, confidence := c.matcher.Match(tag)
	if confidence < language.High || index == 0 {
		return FallbackLocale
	}
	return c.nonFallbackLocales()[index-1]
}

func (c *Catalog) nonFallbackLocales() []string {
	out := make([]string, 0, len(c.locales))
	for _, locale := range c.locales {
		if locale != FallbackLocale {
			out = append(out, locale)
		}
	}
	return out
}

// Translator returns a lookup function bound to locale.
// Missing keys fall back to the FallbackLocale catalog and then to the key itself.
func (c *Catalog) Translator(locale string) func(key string) string {
	primary := c.messages[c.Negotiate(locale)]
	fallback := c.messages[FallbackLocale]

	return func(key string) string {
		if v, ok := primary[key]; ok {
			return v
		}
		if v, ok := fallback[key]; ok {
			return v
		}
		return key
	}
}

// Has reports whether locale is served by a catalog of its own language, either
// exactly ("fr") or through its base language ("fr-CA"). Locales that only reach
// FallbackLocale through Negotiate report false.
func (c *Catalog) Has(locale string) bool {
	_, ok := c.own(locale)
	return ok
}

// own returns the catalog locale matching locale exactly or by base language.
func (c *Catalog) own(locale string) (string, bool) {
	requested := normalize(locale)
	if _, ok := c.messages[requested]; ok {
		return requested, true
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if _, ok := c.messages[base.String()]; ok {
		return base.String(), true
	}
	return "", false
}

func normalize(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
