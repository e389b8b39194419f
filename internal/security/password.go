package security

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the plaintext password.
func HashPassword(plain string) (string, error) {
	hashed, errHash := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errHash != nil {
		return "", errHash
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// bcrypt's comparison is constant-time over the derived key.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
