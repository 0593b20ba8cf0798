package services

import (
	"errors"
	"strings"

	"vitrine/internal/domain"
	"vitrine/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// dummyHash is compared against when the email is unknown, so a failed
// lookup costs about the same as a failed password check and response
// timing does not reveal which emails are provisioned.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vitrine-sem-conta"), 12)

// AuthService binds the sid cookie to a provisioned seller or admin
// account. There is no self-registration: accounts come from the seed,
// and a login only succeeds for the two known roles.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if u.Role != domain.RoleSeller && u.Role != domain.RoleAdmin {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// CurrentUser resolves a session to its account and stamps last_seen, so
// abandoned sessions can be told apart from live ones.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	_ = s.Users.TouchSession(sid)
	return u, nil
}
