package crypto

import (
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the fingerprint of token, or "" for an empty token.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}

	h, err := blake2b.New256([]byte(FingerprintContext))
	if err != nil {
		panic(err) //coverage:ignore
	}
	h.Write([]byte(token))

	return ToBase64URL(h.Sum(nil)[:FingerprintSize])
}
