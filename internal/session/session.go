package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/llanterasoft/pos-panel/internal/backend"
)

// Session is the persisted login state: the bearer token plus the user
// profile it belongs to. The panel resolves it fresh on every permission
// check rather than caching a parsed view.
type Session struct {
	ID          uuid.UUID    `json:"id"`
	AccessToken string       `json:"access_token"`
	User        backend.User `json:"usuario"`
	CreatedAt   time.Time    `json:"created_at"`
}

// New builds a session for a fresh login.
func New(token string, user backend.User) *Session {
	return &Session{
		ID:          uuid.New(),
		AccessToken: token,
		User:        user,
		CreatedAt:   time.Now(),
	}
}

// Store persists at most one session. FileStore survives process restarts
// ("remember me"); MemStore lives only as long as the panel process.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}
