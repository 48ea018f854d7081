package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// ClientRepository defines persistence access for loyalty clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.ClientAccount) error
	Update(ctx context.Context, client *domain.ClientAccount) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ClientAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error)
	List(ctx context.Context) ([]*domain.ClientAccount, error)
	ListByMinPoints(ctx context.Context, minPuntos int) ([]*domain.ClientAccount, error)
	AddPoints(ctx context.Context, id string, delta int) (int, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, nombres, apellidos, email, telefono, password_hash, puntos, fecha_registro, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.ClientAccount) error {
	const query = `
        INSERT INTO clientes (nombres, apellidos, email, telefono, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, puntos, fecha_registro, updated_at`

	return r.pool.QueryRow(ctx, query,
		client.Nombres,
		client.Apellidos,
		client.Email,
		client.Telefono,
		client.PasswordHash,
	).Scan(&client.ID, &client.Puntos, &client.FechaRegistro, &client.UpdatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.ClientAccount) error {
	const query = `
        UPDATE clientes SET nombres=$1, apellidos=$2, email=$3, telefono=$4, password_hash=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		client.Nombres,
		client.Apellidos,
		client.Email,
		client.Telefono,
		client.PasswordHash,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clientes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.ClientAccount, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id=$1`, id))
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE email=$1`, email))
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.ClientAccount, error) {
	return r.listWhere(ctx, `SELECT `+clientColumns+` FROM clientes ORDER BY fecha_registro`)
}

func (r *clientRepository) ListByMinPoints(ctx context.Context, minPuntos int) ([]*domain.ClientAccount, error) {
	return r.listWhere(ctx, `SELECT `+clientColumns+` FROM clientes WHERE puntos >= $1 ORDER BY fecha_registro`, minPuntos)
}

// AddPoints adjusts the loyalty balance and returns the new total. The
// balance never drops below zero.
func (r *clientRepository) AddPoints(ctx context.Context, id string, delta int) (int, error) {
	const query = `
        UPDATE clientes SET puntos = GREATEST(puntos + $1, 0), updated_at=NOW()
        WHERE id=$2
        RETURNING puntos`

	var puntos int
	if err := r.pool.QueryRow(ctx, query, delta, id).Scan(&puntos); err != nil {
		return 0, err
	}
	return puntos, nil
}

func (r *clientRepository) listWhere(ctx context.Context, query string, args ...any) ([]*domain.ClientAccount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ClientAccount
	for rows.Next() {
		var client domain.ClientAccount
		if err := rows.Scan(
			&client.ID,
			&client.Nombres,
			&client.Apellidos,
			&client.Email,
			&client.Telefono,
			&client.PasswordHash,
			&client.Puntos,
			&client.FechaRegistro,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &client)
	}
	return out, rows.Err()
}

func (r *clientRepository) scanOne(row pgx.Row) (*domain.ClientAccount, error) {
	var client domain.ClientAccount
	if err := row.Scan(
		&client.ID,
		&client.Nombres,
		&client.Apellidos,
		&client.Email,
		&client.Telefono,
		&client.PasswordHash,
		&client.Puntos,
		&client.FechaRegistro,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}
