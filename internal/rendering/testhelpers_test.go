package rendering

// mapTranslator returns a Translator backed by m that echoes unknown keys.
func mapTranslator(m map[string]string) Translator {
	return func(key string) string {
		if v, ok := m[key]; ok {
			return v
		}
		return key
	}
}

var frenchTranslator = mapTranslator(map[string]string{
	KeyAt:                     " à ",
	KeySeparator:              ", ",
	KeyGrade:                  "Note :",
	KeyPresent:                "Présent",
	KeyFrom:                   " de ",
	"forms.experience.title":  "Expérience professionnelle",
	"forms.skills.title":      "Compétences",
	"forms.education.title":   "Formation",
	"forms.languages.title":   "Langues",
	"proficiency.fluent":      "Courant",
	"proficiency.native":      "Langue maternelle",
	"forms.internships.title": "Stages",
})

func englishContext() *Context {
	return NewContext(EnglishTranslator, 12, DefaultLayoutConfig(), "en")
}
