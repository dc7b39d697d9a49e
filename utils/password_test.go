package utils

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng&Secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash %q is not in the argon2id encoded form", hash)
	}

	if !CheckPassword(hash, "Str0ng&Secret") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("Str0ng&Secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("Str0ng&Secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2id$v=19$bad"} {
		if CheckPassword(hash, "anything") {
			t.Errorf("CheckPassword() accepted malformed hash %q", hash)
		}
	}
}
