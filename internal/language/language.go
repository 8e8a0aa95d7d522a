package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// whisperSupported lists the ISO 639-1 codes the whisper CLI accepts. The
// engine auto-detects when no language is supplied, so absence from this set
// only disables the explicit --language flag.
var whisperSupported = []string{
	"en", "es", "fr", "de", "it", "pt", "ja", "ko", "zh",
	"ru", "ar", "hi", "nl", "pl", "sv", "da", "no", "fi",
	"tr", "uk", "cs", "el", "he", "id", "th", "vi",
}

var whisperSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(whisperSupported))
	for _, code := range whisperSupported {
		set[code] = struct{}{}
	}
	return set
}()

// Normalize converts any recognized language identifier to ISO 639-1.
// Accepts 2-letter codes, 3-letter container tags and English language names.
// Returns empty string for unrecognized input.
func Normalize(input string) string {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	if cleaned == "" || cleaned == "und" {
		return ""
	}
	if tag, err := language.Parse(cleaned); err == nil {
		base, confidence := tag.Base()
		if confidence != language.No {
			return base.String()
		}
	}
	return fromEnglishName(cleaned)
}

// IsWhisperSupported reports whether whisper accepts an explicit ISO 639-1 code.
func IsWhisperSupported(code string) bool {
	_, ok := whisperSet[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// DisplayName returns a human-readable name for a language code.
// Returns "Unknown" for empty input and the uppercased code when unrecognized.
func DisplayName(code string) string {
	cleaned := strings.TrimSpace(code)
	if cleaned == "" {
		return "Unknown"
	}
	if tag, err := language.Parse(strings.ToLower(cleaned)); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(cleaned)
}

func fromEnglishName(name string) string {
	namer := display.English.Languages()
	for _, code := range whisperSupported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		if strings.EqualFold(namer.Name(tag), name) {
			return code
		}
	}
	return ""
}
