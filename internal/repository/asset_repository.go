package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// AssetRepository defines persistence access for stored asset metadata.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	List(ctx context.Context, tipo domain.AssetType) ([]*domain.Asset, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository returns a Postgres-backed implementation.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetColumns = `id, nombre, tipo, content_type, size, storage_key, url, created_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO activos (nombre, tipo, content_type, size, storage_key, url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		asset.Nombre,
		asset.Tipo,
		asset.ContentType,
		asset.Size,
		asset.StorageKey,
		asset.URL,
	).Scan(&asset.ID, &asset.CreatedAt)
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM activos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM activos WHERE id=$1`, id).Scan(
		&asset.ID,
		&asset.Nombre,
		&asset.Tipo,
		&asset.ContentType,
		&asset.Size,
		&asset.StorageKey,
		&asset.URL,
		&asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, tipo domain.AssetType) ([]*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM activos ORDER BY created_at DESC`
	args := []any{}
	if tipo != "" {
		query = `SELECT ` + assetColumns + ` FROM activos WHERE tipo=$1 ORDER BY created_at DESC`
		args = append(args, tipo)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Nombre,
			&asset.Tipo,
			&asset.ContentType,
			&asset.Size,
			&asset.StorageKey,
			&asset.URL,
			&asset.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &asset)
	}
	return out, rows.Err()
}
