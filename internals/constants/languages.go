package constants

// Language is one entry of the fixed worker-facing language catalog.
// Codes are ISO 639-1; Name is the display name sent to the question
// generator (it writes questions in that language).
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages is the catalog offered on the language step.
// Order matters: it is the order the worker sees.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "pl", Name: "Polski"},
	{Code: "ro", Name: "Română"},
	{Code: "pt", Name: "Português"},
	{Code: "es", Name: "Español"},
	{Code: "uk", Name: "Українська"},
	{Code: "lt", Name: "Lietuvių"},
	{Code: "bg", Name: "Български"},
	{Code: "hu", Name: "Magyar"},
	{Code: "hi", Name: "हिन्दी"},
}

// DefaultNativeLanguage is what uploaded documents are assumed to be
// written in when the manager does not say otherwise.
const DefaultNativeLanguage = "en"

func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// LanguageName resolves a catalog code to its display name, empty when
// the code is not in the catalog.
func LanguageName(code string) string {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return ""
}
