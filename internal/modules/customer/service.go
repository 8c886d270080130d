package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/bus"
)

// ErrConfirmationRequired guards customer deletion.
var ErrConfirmationRequired = errors.New("confirmation required")

// API is the slice of the upstream client this module needs.
type API interface {
	ListCustomers(ctx context.Context) ([]backend.Customer, error)
	GetCustomer(ctx context.Context, ci int64) (*backend.Customer, error)
	CreateCustomer(ctx context.Context, c backend.Customer) (*backend.Customer, error)
	UpdateCustomer(ctx context.Context, ci int64, c backend.Customer) error
	DeleteCustomer(ctx context.Context, ci int64) error
}

// Service handles customer lookup and CRUD for the clients screen and the
// point-of-sale customer search. A lookup miss is an expected outcome that
// callers turn into a "create this customer" offer, never a hard failure.
type Service interface {
	List(ctx context.Context) ([]backend.Customer, error)
	Lookup(ctx context.Context, ci int64) (*backend.Customer, error)
	Create(ctx context.Context, c backend.Customer) (*backend.Customer, error)
	Update(ctx context.Context, ci int64, c backend.Customer) (*backend.Customer, error)
	Delete(ctx context.Context, ci int64, confirm bool) error
}

type service struct {
	api    API
	events *bus.Bus
}

// NewService creates a customer service.
func NewService(api API, events *bus.Bus) Service {
	return &service{api: api, events: events}
}

func (s *service) List(ctx context.Context) ([]backend.Customer, error) {
	return s.api.ListCustomers(ctx)
}

func (s *service) Lookup(ctx context.Context, ci int64) (*backend.Customer, error) {
	if ci <= 0 {
		return nil, fmt.Errorf("ci must be a positive number")
	}
	return s.api.GetCustomer(ctx, ci)
}

func (s *service) Create(ctx context.Context, c backend.Customer) (*backend.Customer, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	created, err := s.api.CreateCustomer(ctx, c)
	if err != nil {
		return nil, err
	}
	s.events.Publish(bus.TopicCustomersChanged, "create", fmt.Sprint(created.CI))
	return created, nil
}

func (s *service) Update(ctx context.Context, ci int64, c backend.Customer) (*backend.Customer, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	if err := s.api.UpdateCustomer(ctx, ci, c); err != nil {
		return nil, err
	}
	s.events.Publish(bus.TopicCustomersChanged, "update", fmt.Sprint(ci))
	return &c, nil
}

func (s *service) Delete(ctx context.Context, ci int64, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	if err := s.api.DeleteCustomer(ctx, ci); err != nil {
		return err
	}
	s.events.Publish(bus.TopicCustomersChanged, "delete", fmt.Sprint(ci))
	return nil
}

func validate(c backend.Customer) error {
	if c.CI <= 0 {
		return fmt.Errorf("ci must be a positive number")
	}
	if c.Name == "" {
		return fmt.Errorf("nombre is required")
	}
	return nil
}
