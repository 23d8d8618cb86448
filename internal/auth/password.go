package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches what existing stored hashes were produced with.
const bcryptCost = 10

// HashPassword produces a salted bcrypt hash. Two calls on the same
// input yield different strings; only ComparePassword can relate them.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword reports whether password matches hash. The
// comparison is constant-time inside bcrypt; a malformed hash is
// simply a non-match.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
