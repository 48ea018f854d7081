package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/repository"
)

// StaffService handles staff account administration.
type StaffService struct {
	staff      repository.StaffRepository
	roles      repository.RoleRepository
	logger     *zap.Logger
	bcryptCost int
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository, roles repository.RoleRepository, logger *zap.Logger, bcryptCost int) *StaffService {
	return &StaffService{staff: staff, roles: roles, logger: logger, bcryptCost: bcryptCost}
}

// StaffWithRole pairs an account with its resolved role name.
type StaffWithRole struct {
	Account *domain.StaffAccount
	Role    domain.RoleName
}

// List returns all staff accounts with resolved roles.
func (s *StaffService) List(ctx context.Context) ([]StaffWithRole, error) {
	accounts, err := s.staff.List(ctx)
	if err != nil {
		return nil, err
	}

	roleNames := map[int]domain.RoleName{}
	if roles, err := s.roles.List(ctx); err == nil {
		for _, r := range roles {
			roleNames[r.ID] = r.Nombre
		}
	}

	out := make([]StaffWithRole, 0, len(accounts))
	for _, acc := range accounts {
		role, ok := roleNames[acc.RoleID]
		if !ok {
			role = domain.RoleEmpleado
		}
		out = append(out, StaffWithRole{Account: acc, Role: role})
	}
	return out, nil
}

// Get loads one staff account.
func (s *StaffService) Get(ctx context.Context, id string) (*domain.StaffAccount, error) {
	return s.staff.GetByID(ctx, id)
}

// Update mutates profile fields; a non-empty password is rehashed.
func (s *StaffService) Update(ctx context.Context, id, nombres, apellidos, email string, roleID int, password string) (*domain.StaffAccount, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	staff.Nombres = nombres
	staff.Apellidos = apellidos
	staff.Email = email
	staff.RoleID = roleID
	if password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete removes a staff account.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	return s.staff.Delete(ctx, id)
}
