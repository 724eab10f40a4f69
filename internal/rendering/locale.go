package rendering

import (
	"strings"

	"golang.org/x/text/language"
)

var rtlLanguages = map[string]bool{
	"ar":  true, // Arabic
	"fa":  true, // Persian
	"ur":  true, // Urdu
	"he":  true, // Hebrew
	"iw":  true, // Hebrew, legacy code
	"yi":  true, // Yiddish
	"ji":  true, // Yiddish, legacy code
	"ps":  true, // Pashto
	"sd":  true, // Sindhi
	"ug":  true, // Uyghur
	"arc": true, // Aramaic
	"bcc": true, // Southern Balochi
	"bqi": true, // Bakhtiari
	"ckb": true, // Central Kurdish
	"dv":  true, // Dhivehi
	"glk": true, // Gilaki
	"ku":  true, // Kurdish
	"mzn": true, // Mazanderani
	"pnb": true, // Western Punjabi
}

// IsRTLLocale reports whether locale is written right to left.
// Region and script subtags are ignored, so "ar-EG" is RTL.
func IsRTLLocale(locale string) bool {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return false
	}
	primary, _, _ := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-")
	if rtlLanguages[primary] {
		return true
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return rtlLanguages[base.String()]
}

// Direction returns "rtl" or "ltr" for locale.
func Direction(locale string) string {
	if IsRTLLocale(locale) {
		return "rtl"
	}
	return "ltr"
}
