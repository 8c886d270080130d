package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	loginErr  error
	verifyErr error
	user      backend.User
	token     string
}

func (f *fakeAPI) Login(ctx context.Context, creds backend.Credentials) (*backend.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &backend.LoginResponse{AccessToken: f.token, User: f.user}, nil
}

func (f *fakeAPI) VerifyToken(ctx context.Context) (*backend.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &f.user, nil
}

func signedToken(t *testing.T, expiresAt int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{ExpiresAt: expiresAt})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	return session.NewManager(
		session.NewFileStore(filepath.Join(t.TempDir(), "session.json")),
		session.NewMemStore(),
	)
}

func vendor() backend.User {
	return backend.User{ID: 2, Username: "mostrador", Role: backend.RoleVendor}
}

func TestLoginStoresSession(t *testing.T) {
	api := &fakeAPI{token: "tok", user: vendor()}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	user, err := svc.Login(context.Background(), "mostrador", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "mostrador", user.Username)
	assert.Equal(t, "tok", sessions.Token())
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := NewService(&fakeAPI{}, newManager(t))

	_, err := svc.Login(context.Background(), "", "secret", false)
	assert.ErrorContains(t, err, "required")
	_, err = svc.Login(context.Background(), "mostrador", "", false)
	assert.ErrorContains(t, err, "required")
}

func TestLoginUpstreamRejection(t *testing.T) {
	api := &fakeAPI{loginErr: &backend.APIError{Status: 401, Message: "credenciales inválidas"}}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	_, err := svc.Login(context.Background(), "mostrador", "wrong", false)
	assert.Error(t, err)
	assert.Nil(t, sessions.Current(), "failed login must not leave a session behind")
}

func TestCurrentUser(t *testing.T) {
	api := &fakeAPI{token: "opaque-token", user: vendor()}
	svc := NewService(api, newManager(t))

	assert.Nil(t, svc.CurrentUser())

	_, err := svc.Login(context.Background(), "mostrador", "secret", false)
	require.NoError(t, err)

	user := svc.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, backend.RoleVendor, user.Role)
}

func TestCurrentUserExpiredTokenClearsSession(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour).Unix())
	api := &fakeAPI{token: expired, user: vendor()}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	_, err := svc.Login(context.Background(), "mostrador", "secret", true)
	require.NoError(t, err)

	assert.Nil(t, svc.CurrentUser())
	assert.Nil(t, sessions.Current(), "expired session must be cleared, not just hidden")
}

func TestCurrentUserValidTokenSurvives(t *testing.T) {
	valid := signedToken(t, time.Now().Add(time.Hour).Unix())
	api := &fakeAPI{token: valid, user: vendor()}
	svc := NewService(api, newManager(t))

	_, err := svc.Login(context.Background(), "mostrador", "secret", true)
	require.NoError(t, err)
	assert.NotNil(t, svc.CurrentUser())
}

func TestVerifyWithoutSession(t *testing.T) {
	svc := NewService(&fakeAPI{}, newManager(t))
	_, err := svc.Verify(context.Background())
	assert.ErrorIs(t, err, backend.ErrSessionExpired)
}

func TestVerifyRefreshesProfile(t *testing.T) {
	api := &fakeAPI{token: "tok", user: vendor()}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	_, err := svc.Login(context.Background(), "mostrador", "secret", true)
	require.NoError(t, err)

	// The upstream now reports a changed profile.
	api.user.FullName = "Ana Rojas Paredes"
	user, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana Rojas Paredes", user.FullName)

	stored := sessions.CurrentUser()
	require.NotNil(t, stored)
	assert.Equal(t, "Ana Rojas Paredes", stored.FullName)
}

func TestVerifyExpiredClearsSession(t *testing.T) {
	api := &fakeAPI{token: "tok", user: vendor()}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	_, err := svc.Login(context.Background(), "mostrador", "secret", true)
	require.NoError(t, err)

	api.verifyErr = backend.ErrSessionExpired
	_, err = svc.Verify(context.Background())
	assert.ErrorIs(t, err, backend.ErrSessionExpired)
	assert.Nil(t, sessions.Current())
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{token: "tok", user: vendor()}
	sessions := newManager(t)
	svc := NewService(api, sessions)

	_, err := svc.Login(context.Background(), "mostrador", "secret", true)
	require.NoError(t, err)
	require.NoError(t, svc.Logout())
	assert.Nil(t, svc.CurrentUser())
}
