package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	methodPBKDF2SHA256 = "pbkdf2:sha256"
	saltChars          = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// MinSaltLength is the shortest salt HashPasswordWithParams accepts.
	MinSaltLength = 8
)

var (
	ErrInvalidHashFormat = errors.New("invalid encoded hash format")
	ErrSaltTooShort      = errors.New("salt length must be at least 8")
)

// HashParams configures PBKDF2-SHA256 password hashing.
type HashParams struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// DefaultHashParams returns the parameters used for new passwords.
func DefaultHashParams() HashParams {
	return HashParams{
		Iterations: 600000,
		SaltLength: 16,
		KeyLength:  sha256.Size,
	}
}

// HashPassword hashes a password with PBKDF2-SHA256 and default parameters.
// The result has the form pbkdf2:sha256:<iterations>$<salt>$<hex digest>.
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultHashParams())
}

// HashPasswordWithParams hashes a password with the given PBKDF2 parameters.
func HashPasswordWithParams(password string, params HashParams) (string, error) {
	if params.SaltLength < MinSaltLength {
		return "", ErrSaltTooShort
	}

	salt, err := randomString(saltChars, params.SaltLength)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), params.Iterations, params.KeyLength, sha256.New)

	return fmt.Sprintf("%s:%d$%s$%s", methodPBKDF2SHA256, params.Iterations, salt, hex.EncodeToString(key)), nil
}

// VerifyPassword checks whether a password matches a
// pbkdf2:sha256:<iterations>$<salt>$<hex digest> hash, comparing in constant
// time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	method, rest, ok := strings.Cut(encodedHash, "$")
	if !ok {
		return false, ErrInvalidHashFormat
	}
	salt, digest, ok := strings.Cut(rest, "$")
	if !ok || salt == "" {
		return false, ErrInvalidHashFormat
	}

	iterStr, found := strings.CutPrefix(method, methodPBKDF2SHA256+":")
	if !found {
		return false, ErrInvalidHashFormat
	}
	iterations, err := strconv.Atoi(iterStr)
	if err != nil || iterations < 1 {
		return false, ErrInvalidHashFormat
	}

	hash, err := hex.DecodeString(digest)
	if err != nil || len(hash) == 0 {
		return false, ErrInvalidHashFormat
	}

	candidate := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(hash), sha256.New)

	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}
