package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = "kalendo_session"

var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is an issued sign-in: the token goes into the cookie, the user is
// returned to the caller.
type Session struct {
	Token string
	User  user.User
}

type Service struct {
	users    user.Service
	secret   []byte
	validity time.Duration
}

func NewService(users user.Service, cfg config.Auth) *Service {
	return &Service{
		users:    users,
		secret:   []byte(cfg.SessionSecret),
		validity: cfg.SessionValidity,
	}
}

// SignIn verifies the email/password pair and issues a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Debugf("sign-in attempt for unknown email: %s", email)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.PasswordHash == "" || !CheckPassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}

	return s.issueSession(u)
}

// SignUp registers a new email/password account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.users.CreateUser(ctx, user.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	})
	if err != nil {
		return Session{}, err
	}

	return s.issueSession(u)
}

// SignInProviderUser issues a session for an account authenticated by an
// external provider, creating the account on first sign-in.
func (s *Service) SignInProviderUser(ctx context.Context, email, displayName string) (Session, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		u, err = s.users.CreateUser(ctx, user.User{
			Email:       email,
			DisplayName: displayName,
		})
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to resolve provider user: %w", err)
	}

	return s.issueSession(u)
}

// UserFromToken resolves a session token into the user it was issued for.
func (s *Service) UserFromToken(ctx context.Context, token string) (user.User, error) {
	userId, err := GetUserIDFromToken(token, s.secret)
	if err != nil {
		return user.User{}, ErrInvalidToken
	}
	return s.users.GetUserById(ctx, userId)
}

func (s *Service) issueSession(u user.User) (Session, error) {
	token, err := GenerateToken(u.Id, s.secret, s.validity)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}
	return Session{Token: token, User: u}, nil
}
