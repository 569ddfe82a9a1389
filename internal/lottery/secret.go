package lottery

import (
	"crypto/rand"
	"encoding/base64"
)

// NewSecret returns an unguessable URL-safe token used as a city's QR
// redemption secret. 16 random bytes, matching the entropy of the codes
// printed on the physical QR stickers.
func NewSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
