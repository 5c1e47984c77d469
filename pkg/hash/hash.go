// Package hash wraps bcrypt behind the encode/matches pair the services use
// for credential storage and verification.
package hash

import "golang.org/x/crypto/bcrypt"

// Encode hashes the plaintext password with bcrypt. The salt is generated by
// bcrypt and embedded in the returned hash.
func Encode(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches reports whether plain is the password that produced hash.
func Matches(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
