package admin

import (
	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

// New builds an Administrator with a hashed password.
func New(username, password string, cost int) (*Administrator, error) {
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &Administrator{Username: username, PasswordHash: hash}, nil
}
