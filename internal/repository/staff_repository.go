package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// StaffRepository defines persistence access for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffAccount) error
	Update(ctx context.Context, staff *domain.StaffAccount) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	List(ctx context.Context) ([]*domain.StaffAccount, error)
	SetTwoFactor(ctx context.Context, id, secret string, enabled bool) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository returns a Postgres-backed implementation.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        INSERT INTO usuarios (nombres, apellidos, email, password_hash, id_rol)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.Nombres,
		staff.Apellidos,
		staff.Email,
		staff.PasswordHash,
		staff.RoleID,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        UPDATE usuarios SET nombres=$1, apellidos=$2, email=$3, password_hash=$4, id_rol=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		staff.Nombres,
		staff.Apellidos,
		staff.Email,
		staff.PasswordHash,
		staff.RoleID,
		staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffAccount, error) {
	const query = `
        SELECT id, nombres, apellidos, email, password_hash, id_rol,
               COALESCE(two_factor_secret, ''), two_factor_enabled, created_at, updated_at
        FROM usuarios WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	const query = `
        SELECT id, nombres, apellidos, email, password_hash, id_rol,
               COALESCE(two_factor_secret, ''), two_factor_enabled, created_at, updated_at
        FROM usuarios WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *staffRepository) List(ctx context.Context) ([]*domain.StaffAccount, error) {
	const query = `
        SELECT id, nombres, apellidos, email, password_hash, id_rol,
               COALESCE(two_factor_secret, ''), two_factor_enabled, created_at, updated_at
        FROM usuarios ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.StaffAccount
	for rows.Next() {
		var staff domain.StaffAccount
		if err := rows.Scan(
			&staff.ID,
			&staff.Nombres,
			&staff.Apellidos,
			&staff.Email,
			&staff.PasswordHash,
			&staff.RoleID,
			&staff.TwoFactorSecret,
			&staff.TwoFactorEnabled,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &staff)
	}
	return out, rows.Err()
}

// SetTwoFactor persists the secret and flag atomically. Called only after
// the owner proved possession of the secret.
func (r *staffRepository) SetTwoFactor(ctx context.Context, id, secret string, enabled bool) error {
	const query = `
        UPDATE usuarios SET two_factor_secret=$1, two_factor_enabled=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, secret, enabled, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) scanOne(row pgx.Row) (*domain.StaffAccount, error) {
	var staff domain.StaffAccount
	if err := row.Scan(
		&staff.ID,
		&staff.Nombres,
		&staff.Apellidos,
		&staff.Email,
		&staff.PasswordHash,
		&staff.RoleID,
		&staff.TwoFactorSecret,
		&staff.TwoFactorEnabled,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
