package auth

import (
	"errors"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes new passwords with one algorithm and verifies
// stored hashes of either supported encoding.
type PasswordHasher struct {
	algorithm string
	argon     argon2.Config
	cost      int
}

func NewPasswordHasher(algorithm string) *PasswordHasher {
	return &PasswordHasher{
		algorithm: algorithm,
		argon:     argon2.DefaultConfig(),
		cost:      bcrypt.DefaultCost,
	}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == "argon2" {
		encoded, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A mismatch is not an error.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	if strings.HasPrefix(hash, "$argon2") {
		return argon2.VerifyEncoded([]byte(password), []byte(hash))
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	}
	return false, err
}
