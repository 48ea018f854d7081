package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/la-capital/crm-service/internal/domain"
)

// CampaignRepository defines persistence access for marketing campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	SetStatus(ctx context.Context, id string, status domain.CampaignStatus, totalEnvios int) error
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a Postgres-backed implementation.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

const campaignColumns = `id, nombre, mensaje, min_puntos, estado, total_envios, created_at, updated_at`

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        INSERT INTO campanias (nombre, mensaje, min_puntos, estado)
        VALUES ($1, $2, $3, $4)
        RETURNING id, total_envios, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		campaign.Nombre,
		campaign.Mensaje,
		campaign.MinPuntos,
		campaign.Estado,
	).Scan(&campaign.ID, &campaign.TotalEnvios, &campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        UPDATE campanias SET nombre=$1, mensaje=$2, min_puntos=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		campaign.Nombre,
		campaign.Mensaje,
		campaign.MinPuntos,
		campaign.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campanias WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campanias WHERE id=$1`, id).Scan(
		&campaign.ID,
		&campaign.Nombre,
		&campaign.Mensaje,
		&campaign.MinPuntos,
		&campaign.Estado,
		&campaign.TotalEnvios,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) List(ctx context.Context) ([]*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campanias ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Campaign
	for rows.Next() {
		var campaign domain.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.Nombre,
			&campaign.Mensaje,
			&campaign.MinPuntos,
			&campaign.Estado,
			&campaign.TotalEnvios,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &campaign)
	}
	return out, rows.Err()
}

func (r *campaignRepository) SetStatus(ctx context.Context, id string, status domain.CampaignStatus, totalEnvios int) error {
	const query = `
        UPDATE campanias SET estado=$1, total_envios=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, totalEnvios, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
