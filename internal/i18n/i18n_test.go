package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoad_EmbeddedCatalogs(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"ar", "de", "en", "es", "fr"}, c.Locales())
	assert.True(t, c.Has("en"))
	assert.False(t, c.Has("xx"))
}

func TestTranslator_English(t *testing.T) {
	tr := loadCatalog(t).Translator("en")

	assert.Equal(t, "Employment History", tr("forms.experience.title"))
	assert.Equal(t, " at ", tr("template.at"))
	assert.Equal(t, ", ", tr("template.separator"))
	assert.Equal(t, "Present", tr("template.present"))
}

func TestTranslator_French(t *testing.T) {
	tr := loadCatalog(t).Translator("fr")

	assert.Equal(t, " à ", tr("template.at"))
	assert.Equal(t, "Compétences", tr("forms.skills.title"))
	assert.Equal(t, "Courant", tr("proficiency.fluent"))
}

func TestTranslator_RegionFallsBackToBase(t *testing.T) {
	tr := loadCatalog(t).Translator("fr-CA")
	assert.Equal(t, "Stages", tr("forms.internships.title"))

	tr = loadCatalog(t).Translator("de_AT")
	assert.Equal(t, "Berufserfahrung", tr("forms.experience.title"))
}

func TestTranslator_UnknownLocaleUsesEnglish(t *testing.T) {
	tr := loadCatalog(t).Translator("ja")
	assert.Equal(t, "Skills", tr("forms.skills.title"))

	tr = loadCatalog(t).Translator("not a locale!")
	assert.Equal(t, "Skills", tr("forms.skills.title"))
}

func TestTranslator_MissingKeyReturnsKey(t *testing.T) {
	tr := loadCatalog(t).Translator("fr")
	assert.Equal(t, "proficiency.klingon", tr("proficiency.klingon"))
}

func TestTranslator_MissingKeyFallsBackToEnglish(t *testing.T) {
	c, err := NewCatalog(map[string][]byte{
		"en": []byte("template:\n  at: \" at \"\n  from: \" from \"\n"),
		"it": []byte("template:\n  at: \" presso \"\n"),
	})
	require.NoError(t, err)

	tr := c.Translator("it")
	assert.Equal(t, " presso ", tr("template.at"))
	assert.Equal(t, " from ", tr("template.from"))
}

func TestNewCatalog_InvalidYAML(t *testing.T) {
	_, err := NewCatalog(map[string][]byte{"en": []byte("forms: [unclosed")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "en.yaml", loadErr.File)
}

func TestNegotiate(t *testing.T) {
	c := loadCatalog(t)

	assert.Equal(t, "ar", c.Negotiate("ar"))
	assert.Equal(t, "ar", c.Negotiate("ar-EG"))
	assert.Equal(t, "es", c.Negotiate("ES"))
	assert.Equal(t, "en", c.Negotiate(""))
}

func TestHas(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		locale string
		want   bool
	}{
		{"en", true},
		{"FR", true},
		{"fr-CA", true},
		{"de_AT", true},
		{"en-US", true},
		{"ja", false},
		{"xx", false},
		{"", false},
		{"not a locale!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Has(tt.locale), tt.locale)
	}
}
