package service

import (
	"context"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/repository"
)

// ClientService handles client administration from the staff panel.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService builds the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]*domain.ClientAccount, error) {
	return s.clients.List(ctx)
}

// Get loads one client.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.ClientAccount, error) {
	return s.clients.GetByID(ctx, id)
}

// Update mutates client profile fields. The password hash is untouched;
// password changes go through the client auth flow.
func (s *ClientService) Update(ctx context.Context, id, nombres, apellidos, email, telefono string) (*domain.ClientAccount, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Nombres = nombres
	client.Apellidos = apellidos
	client.Email = email
	client.Telefono = telefono

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

// AdjustPoints changes a client's loyalty balance and returns the new total.
func (s *ClientService) AdjustPoints(ctx context.Context, id string, delta int) (int, error) {
	return s.clients.AddPoints(ctx, id, delta)
}
