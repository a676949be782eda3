package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashMessage(t *testing.T) {
	a := HashMessage("What do you do?", "pepper-1")
	b := HashMessage("What do you do?", "pepper-1")
	assert.Equal(t, a, b, "hashing must be deterministic")
	assert.Len(t, a, 64, "hex-encoded SHA-256")

	assert.NotEqual(t, a, HashMessage("What do you do!", "pepper-1"))
	assert.NotEqual(t, a, HashMessage("What do you do?", "pepper-2"),
		"a different pepper must yield a different digest")
}
