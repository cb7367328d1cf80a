package locale

import "strings"

// DefaultLanguage is the language the UI copy is authored in. Lookups in
// the default language never touch the translation service.
const DefaultLanguage = "en"

// Language pairs a translation target code with its selector label.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Supported is the closed set of UI languages, in selector order.
var Supported = []Language{
	{Code: "en", Label: "English"},
	{Code: "es", Label: "Spanish"},
	{Code: "fr", Label: "French"},
	{Code: "de", Label: "German"},
	{Code: "hi", Label: "Hindi"},
	{Code: "ta", Label: "Tamil"},
	{Code: "te", Label: "Telugu"},
	{Code: "kn", Label: "Kannada"},
	{Code: "ml", Label: "Malayalam"},
	{Code: "mr", Label: "Marathi"},
}

// Normalize lowercases a raw code, strips any region suffix and returns
// the bare code when it is in the supported set, otherwise "".
func Normalize(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexAny(trimmed, "-_"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if IsSupported(trimmed) {
		return trimmed
	}
	return ""
}

// IsSupported reports whether code is one of the fixed language codes.
func IsSupported(code string) bool {
	for _, lang := range Supported {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// LabelFor returns the selector label for a supported code, or "".
func LabelFor(code string) string {
	for _, lang := range Supported {
		if lang.Code == code {
			return lang.Label
		}
	}
	return ""
}
