package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// ProductRepository defines persistence access for menu products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, nombre, descripcion, precio, categoria, imagen_url, modelo3d_url, disponible, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO productos (nombre, descripcion, precio, categoria, imagen_url, modelo3d_url, disponible)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Nombre,
		product.Descripcion,
		product.Precio,
		product.Categoria,
		product.ImagenURL,
		product.Modelo3DURL,
		product.Disponible,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE productos SET nombre=$1, descripcion=$2, precio=$3, categoria=$4,
               imagen_url=$5, modelo3d_url=$6, disponible=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		product.Nombre,
		product.Descripcion,
		product.Precio,
		product.Categoria,
		product.ImagenURL,
		product.Modelo3DURL,
		product.Disponible,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM productos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE id=$1`, id).Scan(
		&product.ID,
		&product.Nombre,
		&product.Descripcion,
		&product.Precio,
		&product.Categoria,
		&product.ImagenURL,
		&product.Modelo3DURL,
		&product.Disponible,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY categoria, nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Nombre,
			&product.Descripcion,
			&product.Precio,
			&product.Categoria,
			&product.ImagenURL,
			&product.Modelo3DURL,
			&product.Disponible,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &product)
	}
	return out, rows.Err()
}
