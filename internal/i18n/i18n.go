// Package i18n holds the UI strings for every supported interface language.
// The tutor always teaches English; the UI language only changes labels,
// tip and feedback text, and the target of message translation.
package i18n

import "fmt"

// Language is a supported UI language.
type Language struct {
	Code       string // ISO 639-1, also used for translation
	Name       string // English name, used in prompts
	NativeName string
}

// Languages lists the supported UI languages in menu order.
var Languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
}

// Fallback is used for unknown codes and missing strings.
const Fallback = "en"

// Lookup returns the language with the given code.
func Lookup(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Supported reports whether code is a UI language.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Name returns the English name of code, or English for unknown codes.
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return "English"
}

// T returns the string for key in lang, falling back to English.
func T(lang string, key Key) string {
	if s, ok := catalog[lang][key]; ok {
		return s
	}
	if s, ok := catalog[Fallback][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key with args.
func Tf(lang string, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
