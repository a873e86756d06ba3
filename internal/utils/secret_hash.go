package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashClientSecret hashes a plaintext client secret using bcrypt.
func HashClientSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckClientSecretHash compares a plaintext client secret with a bcrypt hash.
func CheckClientSecretHash(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
