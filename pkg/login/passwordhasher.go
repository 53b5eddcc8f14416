package login

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the interface for password hashing implementations
type PasswordHasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash
	Verify(password, hashedPassword string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt
type BcryptHasher struct{}

// Hash implements PasswordHasher.Hash
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// Verify implements PasswordHasher.Verify
func (h *BcryptHasher) Verify(password, hashedPassword string) (bool, error) {
	if password == "" || hashedPassword == "" {
		return false, errors.New("password and hashed password cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil // Password doesn't match, but not an error
		}
		return false, err // Some other error occurred
	}

	return true, nil
}
