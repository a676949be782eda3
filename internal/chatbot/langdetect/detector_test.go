package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_SwedishGreetings(t *testing.T) {
	d := New("en")

	for _, greeting := range []string{"hej", "Hej", "HEJ!", "tjena", "hallå", "hejsan!"} {
		assert.Equal(t, "sv", d.Detect(greeting), "greeting %q", greeting)
	}
}

func TestDetector_SwedishSentence(t *testing.T) {
	d := New("en")

	got := d.Detect("Hej, jag skulle vilja veta mer om era tjänster och priser")
	assert.Equal(t, "sv", got)
}

func TestDetector_EnglishSentence(t *testing.T) {
	d := New("en")

	got := d.Detect("How much does it cost to build a website with you?")
	assert.Equal(t, "en", got)
}

func TestDetector_ShortInputFallsBack(t *testing.T) {
	d := New("en")
	assert.Equal(t, "en", d.Detect("ok"))
	assert.Equal(t, "en", d.Detect(""))

	// The fallback follows configuration, not a hard-coded tag.
	sv := New("sv")
	assert.Equal(t, "sv", sv.Detect("!!"))
}
