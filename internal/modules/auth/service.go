package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/session"
)

// API is the slice of the upstream client the login flow needs.
type API interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.LoginResponse, error)
	VerifyToken(ctx context.Context) (*backend.User, error)
}

// Service owns the login session: obtaining the bearer token, storing it in
// the right store for remember-me, and detecting expiry.
type Service interface {
	Login(ctx context.Context, username, password string, remember bool) (*backend.User, error)
	Logout() error
	CurrentUser() *backend.User
	Verify(ctx context.Context) (*backend.User, error)
}

type service struct {
	api      API
	sessions *session.Manager
}

// NewService creates an auth service over the session manager.
func NewService(api API, sessions *session.Manager) Service {
	return &service{api: api, sessions: sessions}
}

func (s *service) Login(ctx context.Context, username, password string, remember bool) (*backend.User, error) {
	if username == "" {
		return nil, fmt.Errorf("nombre_usuario is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	res, err := s.api.Login(ctx, backend.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Begin(res.AccessToken, res.User, remember); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (s *service) Logout() error {
	return s.sessions.End()
}

// CurrentUser resolves the logged-in user. A token whose exp claim has
// passed counts as logged out and clears the session, so the UI bounces to
// login without waiting for an upstream 401.
func (s *service) CurrentUser() *backend.User {
	current := s.sessions.Current()
	if current == nil {
		return nil
	}
	if tokenExpired(current.AccessToken) {
		if err := s.sessions.End(); err != nil {
			log.Printf("auth: clearing expired session: %v", err)
		}
		return nil
	}
	u := current.User
	return &u
}

// Verify asks the upstream API whether the token is still good and stores
// the refreshed profile. ErrSessionExpired clears the session.
func (s *service) Verify(ctx context.Context) (*backend.User, error) {
	if s.sessions.Current() == nil {
		return nil, backend.ErrSessionExpired
	}
	user, err := s.api.VerifyToken(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrSessionExpired) {
			if endErr := s.sessions.End(); endErr != nil {
				log.Printf("auth: clearing rejected session: %v", endErr)
			}
		}
		return nil, err
	}
	if err := s.sessions.Refresh(*user); err != nil {
		log.Printf("auth: refreshing stored profile: %v", err)
	}
	return user, nil
}

// tokenExpired parses the token without verifying the signature (the panel
// has no signing key) and checks only the registered exp claim. Tokens that
// do not parse are left for the upstream API to judge.
func tokenExpired(token string) bool {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt > 0 && time.Now().Unix() > claims.ExpiresAt
}
