package service

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword produces a salted bcrypt hash. Each call salts freshly, so the
// same password never hashes to the same string twice.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// malformed hash simply fails verification.
func VerifyPassword(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
