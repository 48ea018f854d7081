package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// RoleRepository resolves staff role names from the roles relation.
type RoleRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	var role domain.Role
	if err := r.pool.QueryRow(ctx, `SELECT id, nombre FROM roles WHERE id=$1`, id).
		Scan(&role.ID, &role.Nombre); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Nombre); err != nil {
			return nil, err
		}
		out = append(out, &role)
	}
	return out, rows.Err()
}
