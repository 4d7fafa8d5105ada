package admin

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

// Login failures shown to the user.
var (
	ErrUsernameNotFound  = errors.New("Username not found")
	ErrIncorrectPassword = errors.New("Incorrect password")
)

// Authenticator checks administrator credentials.
type Authenticator struct {
	admins Repository
}

// NewAuthenticator creates an Authenticator backed by admins.
func NewAuthenticator(admins Repository) *Authenticator {
	return &Authenticator{admins: admins}
}

// Login returns the administrator matching username and password.
// It returns ErrUsernameNotFound or ErrIncorrectPassword for bad
// credentials; any other error comes from the store.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Administrator, error) {
	adm, err := a.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUsernameNotFound
		}
		return nil, errors.Wrap(err, "find administrator")
	}

	// bcrypt compares in constant time.
	err = bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return adm, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return nil, ErrIncorrectPassword
	default:
		return nil, errors.Wrap(err, "compare password")
	}
}
