package crypto

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rakhimovb/staylist/internal/common/constants"
)

// TokenGenerator mints opaque bearer tokens. A token is random bytes,
// hex-encoded; it carries no claims and is valid until cleared server-side.
type TokenGenerator interface {
	NewToken() (string, error)
}

type RandomTokenGenerator struct{}

func (g *RandomTokenGenerator) NewToken() (string, error) {
	b := make([]byte, constants.AuthTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
