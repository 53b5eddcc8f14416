package utils

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a random alphanumeric string of the given
// length. Uses crypto/rand; falls back to math/rand only if crypto/rand
// fails (extremely rare).
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomCharset[mrand.Intn(len(randomCharset))]
			continue
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}
