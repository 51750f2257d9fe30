// Package hash holds the credential hashing contract: one-way, salted,
// with a fixed adaptive work factor.
package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor. Raising it slows every login; it is a
// deployment-wide constant, not per-request configuration.
const Cost = 12

func Password(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare is the only sanctioned login check. bcrypt's comparison is
// constant-time with respect to the candidate.
func Compare(candidate, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate)) == nil
}
