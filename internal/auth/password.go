package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 32
	keyBytes   = 32
	iterations = 100000
)

// HashPassword derives a key from the password with a fresh random salt.
// Both values come back hex-encoded for storage.
func HashPassword(password string) (salt, key string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	key = derive(password, salt)
	return salt, key, nil
}

// VerifyPassword re-derives the key from the candidate password and the
// stored salt and compares it against the stored key.
func VerifyPassword(password, salt, key string) bool {
	candidate := derive(password, salt)
	return hmac.Equal([]byte(candidate), []byte(key))
}

func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key)
}
