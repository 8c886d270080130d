package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/bus"
)

// ErrConfirmationRequired guards user deletion.
var ErrConfirmationRequired = errors.New("confirmation required")

// API is the slice of the upstream client the users screen needs.
type API interface {
	ListUsers(ctx context.Context) ([]backend.User, error)
	GetUser(ctx context.Context, id int64) (*backend.User, error)
	CreateUser(ctx context.Context, u backend.User, password string) (*backend.User, error)
	UpdateUser(ctx context.Context, id int64, u backend.User, password string) error
	DeleteUser(ctx context.Context, id int64) error
}

// SaveRequest carries the user form. Password is required on create and
// optional on update.
type SaveRequest struct {
	backend.User
	Password string `json:"password,omitempty"`
}

// ListFilter narrows the account list in memory: Search is a
// case-insensitive substring over username, full name and email; Role and
// Status are exact. Empty criteria match everything.
type ListFilter struct {
	Search string `json:"busqueda,omitempty"`
	Role   string `json:"rol,omitempty"`
	Status string `json:"estado,omitempty"`
}

// Service is the operator-account CRUD pass-through with local validation.
type Service interface {
	List(ctx context.Context, f ListFilter) ([]backend.User, error)
	Get(ctx context.Context, id int64) (*backend.User, error)
	Create(ctx context.Context, req SaveRequest) (*backend.User, error)
	Update(ctx context.Context, id int64, req SaveRequest) (*backend.User, error)
	Delete(ctx context.Context, id int64, confirm bool) error
}

type service struct {
	api    API
	events *bus.Bus
}

// NewService creates a users service.
func NewService(api API, events *bus.Bus) Service {
	return &service{api: api, events: events}
}

func (s *service) List(ctx context.Context, f ListFilter) ([]backend.User, error) {
	accounts, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return filterAccounts(accounts, f), nil
}

func filterAccounts(accounts []backend.User, f ListFilter) []backend.User {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]backend.User, 0, len(accounts))
	for _, u := range accounts {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.FullName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (s *service) Get(ctx context.Context, id int64) (*backend.User, error) {
	return s.api.GetUser(ctx, id)
}

func (s *service) Create(ctx context.Context, req SaveRequest) (*backend.User, error) {
	if err := validate(req.User); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required for new users")
	}
	created, err := s.api.CreateUser(ctx, req.User, req.Password)
	if err != nil {
		return nil, err
	}
	s.events.Publish(bus.TopicUsersChanged, "create", fmt.Sprint(created.ID))
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, req SaveRequest) (*backend.User, error) {
	if err := validate(req.User); err != nil {
		return nil, err
	}
	if err := s.api.UpdateUser(ctx, id, req.User, req.Password); err != nil {
		return nil, err
	}
	s.events.Publish(bus.TopicUsersChanged, "update", fmt.Sprint(id))
	return s.api.GetUser(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.events.Publish(bus.TopicUsersChanged, "delete", fmt.Sprint(id))
	return nil
}

func validate(u backend.User) error {
	if u.Username == "" {
		return fmt.Errorf("nombre_usuario is required")
	}
	if u.Role != backend.RoleAdmin && u.Role != backend.RoleVendor {
		return fmt.Errorf("invalid rol: %s (allowed: %s, %s)", u.Role, backend.RoleAdmin, backend.RoleVendor)
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email: %s", u.Email)
	}
	return nil
}
