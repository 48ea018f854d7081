package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/repository"
	"github.com/la-capital/crm-service/internal/storage"
)

// AssetService stores binary assets and their metadata records.
type AssetService struct {
	assets repository.AssetRepository
	store  storage.ObjectStore
}

// NewAssetService builds the service.
func NewAssetService(assets repository.AssetRepository, store storage.ObjectStore) *AssetService {
	return &AssetService{assets: assets, store: store}
}

// Upload writes the object first and the metadata row second, so a failed
// upload never leaves a dangling record.
func (s *AssetService) Upload(ctx context.Context, filename string, tipo domain.AssetType, contentType string, size int64, body io.Reader) (*domain.Asset, error) {
	key := strings.ToLower(string(tipo)) + "/" + uuid.NewString() + path.Ext(filename)

	if err := s.store.Put(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		Nombre:      filename,
		Tipo:        tipo,
		ContentType: contentType,
		Size:        size,
		StorageKey:  key,
		URL:         s.store.URL(key),
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		// Best effort cleanup of the orphaned object.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return asset, nil
}

// List returns asset metadata, optionally filtered by type.
func (s *AssetService) List(ctx context.Context, tipo domain.AssetType) ([]*domain.Asset, error) {
	return s.assets.List(ctx, tipo)
}

// Delete removes the metadata row and the stored object.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, asset.StorageKey)
}
