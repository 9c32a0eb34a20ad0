package usecases_port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type ManagePresetsPort interface {
	Save(ctx context.Context, name string, params domain.SearchParameters) (*domain.SearchPreset, error)
	List(ctx context.Context) ([]domain.SearchPreset, error)
	GetByName(ctx context.Context, name string) (*domain.SearchPreset, error)
	Delete(ctx context.Context, id string) error
}
