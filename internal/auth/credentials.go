package auth

import (
	"errors"
	"fmt"

	"github.com/clinic-management/clinic-service/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type account struct {
	hash []byte
	role string
}

// CredentialStore checks login credentials against the configured users.
// Plain passwords from config are hashed once at startup.
type CredentialStore struct {
	accounts map[string]account
}

func NewCredentialStore(users []config.UserConfig, cost int) (*CredentialStore, error) {
	store := &CredentialStore{accounts: make(map[string]account, len(users))}

	for _, u := range users {
		if u.Username == "" {
			return nil, errors.New("auth user without username")
		}

		hash := []byte(u.PasswordHash)
		if len(hash) == 0 {
			if u.Password == "" {
				return nil, fmt.Errorf("auth user %q has no password", u.Username)
			}
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(u.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for %q: %w", u.Username, err)
			}
		}

		store.accounts[u.Username] = account{hash: hash, role: u.Role}
	}

	return store, nil
}

// Authenticate returns the role of the user on a username/password match
func (s *CredentialStore) Authenticate(username, password string) (string, error) {
	acc, ok := s.accounts[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return acc.role, nil
}
