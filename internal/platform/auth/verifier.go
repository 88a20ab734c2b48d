package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a supplied password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks the front-desk password. The concrete
// implementation is chosen at startup; handlers never see the secret itself.
type CredentialVerifier interface {
	Verify(password string) error
}

type bcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier verifies passwords against a bcrypt hash, typically
// loaded from FRONT_DESK_PASSWORD_HASH.
func NewBcryptVerifier(hash string) CredentialVerifier {
	return &bcryptVerifier{hash: []byte(hash)}
}

func (v *bcryptVerifier) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

type devVerifier struct{}

// NewDevVerifier accepts any non-empty password. Development only; serve
// refuses to wire it outside ENV=development.
func NewDevVerifier() CredentialVerifier {
	return devVerifier{}
}

func (devVerifier) Verify(password string) error {
	if password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for FRONT_DESK_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
