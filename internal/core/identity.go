package core

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Demo credential presented on the login surface of the reference deployment.
const (
	DemoEmail    = "admin@coach.com"
	DemoPassword = "password"
	demoName     = "Demo Coach"
)

// ErrInvalidCredentials is returned by Login when the email or password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

type credential struct {
	email string
	name  string
	hash  []byte
}

func defaultCredential() credential {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return credential{email: DemoEmail, name: demoName, hash: hash}
}

func (c credential) matches(email, password string) bool {
	if !strings.EqualFold(email, c.email) {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}

// Login verifies the supplied credentials and persists the signed-in identity.
func (s *Service) Login(ctx context.Context, email, password string) (Identity, error) {
	identity := Identity{Email: s.credential.email, Name: s.credential.name}
	_, err := s.run(ctx, "login", "", func(tx Transaction) error {
		if !s.credential.matches(email, password) {
			return ErrInvalidCredentials
		}
		tx.SetIdentity(&identity)
		return nil
	}, nil)
	if err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Logout clears the persisted signed-in identity.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.run(ctx, "logout", "", func(tx Transaction) error {
		tx.SetIdentity(nil)
		return nil
	}, nil)
	return err
}

// CurrentUser reports the persisted signed-in identity, if any.
func (s *Service) CurrentUser() (Identity, bool) {
	return s.store.CurrentIdentity()
}
