package utils

import (
	"crypto/rand"
	"math/big"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous upper-case alphabet.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = referenceAlphabet[idx.Int64()]
	}
	return string(b)
}
