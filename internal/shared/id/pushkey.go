// Package id generates backend-assigned record keys.
//
// Push keys are composed of a fixed-width base62 encoding of the creation
// time in unix milliseconds followed by random base62 characters. Because
// the alphabet is in ASCII order, keys sort lexicographically in creation
// order, which makes the key a deterministic secondary sort for records
// sharing a timestamp.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"chamado/internal/shared/biztime"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z (ASCII order)
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// timePartLength is the fixed width of the timestamp prefix.
	// 62^8 unix milliseconds is far beyond any realistic clock value.
	timePartLength = 8

	// randomPartLength is the number of random characters appended after
	// the timestamp prefix.
	randomPartLength = 12

	// DefaultLength is the default length for plain random IDs
	DefaultLength = 20
)

// Generate creates a random ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewPushKey creates a time-prefixed key for records appended with a
// generated id. Keys created later always compare greater.
func NewPushKey() (string, error) {
	return pushKeyAt(biztime.ToMillis(biztime.NowUTC()))
}

// MustNewPushKey creates a push key and panics on error.
func MustNewPushKey() string {
	key, err := NewPushKey()
	if err != nil {
		panic(err)
	}
	return key
}

func pushKeyAt(millis int64) (string, error) {
	prefix := make([]byte, timePartLength)
	for i := timePartLength - 1; i >= 0; i-- {
		prefix[i] = alphabet[millis%int64(len(alphabet))]
		millis /= int64(len(alphabet))
	}

	suffix, err := Generate(randomPartLength)
	if err != nil {
		return "", err
	}

	return string(prefix) + suffix, nil
}
