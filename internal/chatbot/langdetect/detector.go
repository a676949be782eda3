// Package langdetect classifies visitor messages into a supported language tag.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// swedishThreshold is the minimum confidence before a message is treated as
// Swedish. Below it the detector falls back to the default language.
const swedishThreshold = 0.5

// Short Swedish greetings score poorly with statistical detection, so they
// are matched directly.
var swedishGreetings = map[string]struct{}{
	"hej": {}, "hallå": {}, "tjena": {}, "hejsan": {},
	"hej!": {}, "hallå!": {}, "tjena!": {}, "hejsan!": {},
}

// Detector maps input text to a language tag from a fixed set. It never
// returns an error; undetectable input yields the configured default.
type Detector struct {
	detector    lingua.LanguageDetector
	defaultLang string
}

// New builds a detector over English and Swedish with the given fallback tag.
func New(defaultLang string) *Detector {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Swedish).
			Build(),
		defaultLang: defaultLang,
	}
}

// Detect returns "sv" or "en" for the given text, falling back to the
// default language when the input is too short or ambiguous.
func (d *Detector) Detect(text string) string {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if len(trimmed) <= 2 {
		return d.defaultLang
	}

	if _, ok := swedishGreetings[trimmed]; ok {
		return "sv"
	}

	if d.detector.ComputeLanguageConfidence(text, lingua.Swedish) > swedishThreshold {
		return "sv"
	}
	if lang, ok := d.detector.DetectLanguageOf(text); ok && lang == lingua.English {
		return "en"
	}

	return d.defaultLang
}
