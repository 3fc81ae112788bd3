package crypto

import (
	"strings"
	"testing"
)

// fastParams keeps the suite quick; production uses DefaultHashParams.
var fastParams = HashParams{Iterations: 1000, SaltLength: 16, KeyLength: 32}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	// pbkdf2:sha256:600000$<salt>$<hex>
	parts := strings.Split(hash, "$")
	if len(parts) != 3 {
		t.Fatalf("HashPassword() expected 3 parts, got %d: %q", len(parts), hash)
	}
	if parts[0] != "pbkdf2:sha256:600000" {
		t.Errorf("HashPassword() method = %q, want %q", parts[0], "pbkdf2:sha256:600000")
	}
	if len(parts[1]) != 16 {
		t.Errorf("HashPassword() salt length = %d, want 16", len(parts[1]))
	}
	if len(parts[2]) != 64 {
		t.Errorf("HashPassword() digest length = %d, want 64", len(parts[2]))
	}
}

func TestHashPasswordRejectsShortSalt(t *testing.T) {
	_, err := HashPasswordWithParams("password", HashParams{Iterations: 1000, SaltLength: 4, KeyLength: 32})
	if err != ErrSaltTooShort {
		t.Errorf("HashPasswordWithParams() error = %v, want %v", err, ErrSaltTooShort)
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPasswordWithParams(password, fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for correct password")
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPasswordWithParams("correct-password", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	match, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := HashPasswordWithParams("same-password", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}
	hash2, err := HashPasswordWithParams("same-password", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("identical hashes for same password (salt should differ)")
	}
}

// Hashes in this format are produced by werkzeug.security.generate_password_hash.
func TestVerifyPasswordWerkzeugVector(t *testing.T) {
	// hashlib.pbkdf2_hmac("sha256", b"password", b"salt", 1).hex()
	hash := "pbkdf2:sha256:1$salt$120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"

	match, err := VerifyPassword("password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for known PBKDF2-SHA256 vector")
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	for _, hash := range []string{
		"invalid-hash-format",
		"pbkdf2:sha256:abc$salt$00",
		"pbkdf2:md5:1000$salt$00",
		"pbkdf2:sha256:1000$salt$not-hex",
		"pbkdf2:sha256:1000$$00",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	} {
		if _, err := VerifyPassword("password", hash); err == nil {
			t.Errorf("VerifyPassword() expected error for %q", hash)
		}
	}
}
