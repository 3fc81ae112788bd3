package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	secretChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MinSecretLength is the shortest signing secret GenerateSecret produces.
	MinSecretLength = 32
)

var ErrSecretTooShort = errors.New("secret length must be at least 32")

// GenerateSecret creates a cryptographically secure random string suitable
// for signing session tokens.
func GenerateSecret(length int) (string, error) {
	if length < MinSecretLength {
		return "", ErrSecretTooShort
	}
	return randomString(secretChars, length)
}

// randomString builds a string of n characters drawn uniformly from charset.
func randomString(charset string, n int) (string, error) {
	result := make([]byte, n)
	for i := range result {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}
	return string(result), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
