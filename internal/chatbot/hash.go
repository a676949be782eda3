// Package chatbot groups the chatbot feature: language detection, the
// completion client, chat log persistence, and the orchestrating service.
package chatbot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashMessage hashes a visitor message with HMAC-SHA256 so cache keys never
// contain raw message text. The pepper comes from configuration.
func HashMessage(message, pepper string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
