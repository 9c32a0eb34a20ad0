package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// ManagePresetsUseCase — CRUD сохраненных поисков. Параметры пресета
// проходят ту же проверку, что и перед построением URL: битый пресет
// не должен попасть в хранилище.
type ManagePresetsUseCase struct {
	presets port.PresetRepositoryPort
	urls    port.SearchURLPort
	clock   port.ClockPort
}

func NewManagePresetsUseCase(presets port.PresetRepositoryPort, urls port.SearchURLPort, clock port.ClockPort) *ManagePresetsUseCase {
	return &ManagePresetsUseCase{
		presets: presets,
		urls:    urls,
		clock:   clock,
	}
}

func (uc *ManagePresetsUseCase) Save(ctx context.Context, name string, params domain.SearchParameters) (*domain.SearchPreset, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ManagePresets"})

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "preset name must not be empty"}
	}
	// Построение URL заодно валидирует параметры; сам URL не нужен.
	if _, err := uc.urls.BuildURL(params); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	saved, err := uc.presets.Save(ctx, domain.SearchPreset{
		ID:        uuid.New().String(),
		Name:      name,
		Params:    params,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logger.Error("Failed to save search preset", err, port.Fields{"name": name})
		return nil, fmt.Errorf("failed to save search preset: %w", err)
	}

	logger.Info("Search preset saved", port.Fields{"preset_id": saved.ID, "name": saved.Name})
	return saved, nil
}

func (uc *ManagePresetsUseCase) List(ctx context.Context) ([]domain.SearchPreset, error) {
	presets, err := uc.presets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list search presets: %w", err)
	}
	return presets, nil
}

// GetByName отдает пресет по имени; имена уникальны (upsert по name).
func (uc *ManagePresetsUseCase) GetByName(ctx context.Context, name string) (*domain.SearchPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "preset name must not be empty"}
	}

	preset, err := uc.presets.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return preset, nil
}

func (uc *ManagePresetsUseCase) Delete(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ManagePresets"})

	if err := uc.presets.Delete(ctx, id); err != nil {
		logger.Warn("Failed to delete search preset", port.Fields{"preset_id": id, "reason": err.Error()})
		return err
	}
	logger.Info("Search preset deleted", port.Fields{"preset_id": id})
	return nil
}
