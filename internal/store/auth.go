package store

import (
	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// Login signs in the directory user matching both email and secret.
// Secrets are compared in plaintext; this is not a security boundary.
func (s *Store) Login(email, secret string) (models.User, error) {
	idx := -1
	for i := range s.users {
		if s.users[i].Email == email && s.users[i].Password == secret {
			idx = i
			break
		}
	}

	var err error
	switch {
	case idx < 0:
		err = ErrInvalidCredentials
	case s.users[idx].IsBlocked:
		err = ErrBlocked
	}
	if err != nil {
		s.record("login", err, map[string]interface{}{"email": email})
		return models.User{}, err
	}

	user := &s.users[idx]
	s.currentUserID = user.ID

	s.persist(persistence.KeyCurrentUser)
	s.appendLog("User Login", user.Email, models.LogTypeSuccess)
	s.record("login", nil, nil)

	return deepCopy(s.logger, *user), nil
}

// Logout clears the session user
func (s *Store) Logout() {
	s.record("logout", nil, nil)
	s.currentUserID = ""
	s.persist(persistence.KeyCurrentUser)
}

// IsSignedIn reports whether a session user is present
func (s *Store) IsSignedIn() bool {
	return s.currentUser() != nil
}
