package sitrans

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// LanguageNames maps locale codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"en_US": "English (United States)",
	"en_GB": "English (United Kingdom)",
	"de_DE": "German (Germany)",
	"es_ES": "Spanish (Spain)",
	"es_MX": "Spanish (Mexico)",
	"fr_FR": "French (France)",
	"it_IT": "Italian (Italy)",
	"ja_JP": "Japanese (Japan)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
	"ar_SA": "Arabic (Saudi Arabia)",
	"bn_BD": "Bengali (Bangladesh)",
	"el_GR": "Greek (Greece)",
	"he_IL": "Hebrew (Israel)",
	"hi_IN": "Hindi (India)",
	"ko_KR": "Korean (South Korea)",
	"ru_RU": "Russian (Russia)",
	"th_TH": "Thai (Thailand)",
	"tr_TR": "Turkish (Turkey)",
	"uk_UA": "Ukrainian (Ukraine)",
	"vi_VN": "Vietnamese (Vietnam)",
}

// ShortCodeToLocale maps short language codes to full locale codes.
var ShortCodeToLocale = map[string]string{
	"en": "en_US",
	"de": "de_DE",
	"es": "es_ES",
	"fr": "fr_FR",
	"it": "it_IT",
	"ja": "ja_JP",
	"pt": "pt_BR",
	"zh": "zh_CN",
	"ko": "ko_KR",
	"ru": "ru_RU",
	"ar": "ar_SA",
	"he": "he_IL",
	"hi": "hi_IN",
	"bn": "bn_BD",
	"el": "el_GR",
	"th": "th_TH",
	"tr": "tr_TR",
	"uk": "uk_UA",
	"vi": "vi_VN",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// scriptRanges maps base language codes to the Unicode ranges of the
// script the language is written in. Used by the Selector's
// already-translated guard: text containing runes of the target script
// is assumed to be translated already.
var scriptRanges = map[string][]*unicode.RangeTable{
	"hi": {unicode.Devanagari},
	"bn": {unicode.Bengali},
	"ar": {unicode.Arabic},
	"fa": {unicode.Arabic},
	"ur": {unicode.Arabic},
	"he": {unicode.Hebrew},
	"ru": {unicode.Cyrillic},
	"uk": {unicode.Cyrillic},
	"el": {unicode.Greek},
	"th": {unicode.Thai},
	"ko": {unicode.Hangul},
	"ja": {unicode.Hiragana, unicode.Katakana, unicode.Han},
	"zh": {unicode.Han},
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[langCode]; ok {
		return name
	}
	if locale, ok := ShortCodeToLocale[BaseLang(langCode)]; ok {
		if name, ok := LanguageNames[locale]; ok {
			return name
		}
	}
	return langCode
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[BaseLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// BaseLang extracts the lowercase base language code (e.g., "en" from
// "en_US" or "en-GB").
func BaseLang(langCode string) string {
	code := strings.ReplaceAll(langCode, "-", "_")
	return strings.ToLower(strings.Split(code, "_")[0])
}

// ToHTMLLang converts a locale code to HTML lang attribute format
// (e.g., "es_ES" → "es-ES").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}

// NormalizePair canonicalizes both codes of a language pair via BCP 47
// parsing. Unknown codes are rejected so that a typo fails the run at
// setup instead of producing a silent no-op translation.
func NormalizePair(pair LanguagePair) (LanguagePair, error) {
	src, err := language.Parse(strings.ReplaceAll(pair.Source, "_", "-"))
	if err != nil {
		return LanguagePair{}, &TranslationError{Message: "invalid source language " + pair.Source, Cause: err}
	}
	if _, err := language.Parse(strings.ReplaceAll(pair.Target, "_", "-")); err != nil {
		return LanguagePair{}, &TranslationError{Message: "invalid target language " + pair.Target, Cause: err}
	}

	// Sources are matched against detector output and backend catalogs
	// by base code; targets keep their locale variant (es_ES vs es_MX
	// matters for the prompt).
	base, _ := src.Base()
	return LanguagePair{Source: base.String(), Target: pair.Target}, nil
}

// ScriptRanges returns the Unicode ranges of the script the given
// language is written in, or nil when the language shares the Latin
// script with typical source languages (the script guard cannot help
// there and a Detector should be used instead).
func ScriptRanges(langCode string) []*unicode.RangeTable {
	return scriptRanges[BaseLang(langCode)]
}

// ContainsScript reports whether any rune of text belongs to one of the
// given Unicode ranges.
func ContainsScript(text string, ranges []*unicode.RangeTable) bool {
	if len(ranges) == 0 {
		return false
	}
	for _, r := range text {
		for _, rt := range ranges {
			if unicode.In(r, rt) {
				return true
			}
		}
	}
	return false
}
