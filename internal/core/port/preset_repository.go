package port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// PresetRepositoryPort — персистентное хранилище сохраненных поисков.
type PresetRepositoryPort interface {
	Save(ctx context.Context, preset domain.SearchPreset) (*domain.SearchPreset, error)
	List(ctx context.Context) ([]domain.SearchPreset, error)
	GetByName(ctx context.Context, name string) (*domain.SearchPreset, error)
	Delete(ctx context.Context, id string) error
}
