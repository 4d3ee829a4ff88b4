package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Short ids and generated suffixes use a lowercase-alphanumeric charset.
const tokenCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// ShortIDLength is the length of generated shortlink ids.
const ShortIDLength = 6

// RandomToken generates a random lowercase-alphanumeric token of the given
// length using crypto/rand.
func RandomToken(length int) (string, error) {
	if length <= 0 {
		length = ShortIDLength
	}

	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b[i] = tokenCharset[num.Int64()]
	}
	return string(b), nil
}

// timestampedID builds ids of the form <prefix>_<unix-millis>_<random>,
// used for form definitions and responses.
func timestampedID(prefix string) (string, error) {
	suffix, err := RandomToken(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix), nil
}
