// Package auth provides pluggable password hashing and comparison.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a password does not match its stored secret.
var ErrMismatch = errors.New("auth: password mismatch")

// PasswordHasher hashes new secrets and compares candidates against stored
// ones. The login contract is the same for every implementation.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(stored, plain string) error
}

// BcryptHasher is the default implementation.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Compare(stored, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}

// PlainHasher compares secrets verbatim. It exists only for legacy databases
// seeded with plaintext passwords and must be enabled explicitly.
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlainHasher) Compare(stored, plain string) error {
	if stored != plain {
		return ErrMismatch
	}
	return nil
}
