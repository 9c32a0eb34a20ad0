package postgres_adapter

import (
	"encoding/json"
	"errors"
	"fmt"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// PostgresPresetRepository - реализация порта сохраненных поисков для PostgreSQL.
// Параметры поиска хранятся одной jsonb-колонкой: их состав меняется чаще,
// чем хочется гонять миграции.
type PostgresPresetRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPresetRepository - конструктор.
func NewPostgresPresetRepository(pool *pgxpool.Pool) (*PostgresPresetRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPresetRepository{pool: pool}, nil
}

// Save вставляет пресет либо обновляет существующий с тем же именем.
func (r *PostgresPresetRepository) Save(ctx context.Context, preset domain.SearchPreset) (*domain.SearchPreset, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPresetRepository",
		"method":    "Save",
		"name":      preset.Name,
	})

	paramsJSON, err := json.Marshal(preset.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset params: %w", err)
	}

	query := `
		INSERT INTO search_presets (id, name, params, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (name) DO UPDATE
			SET params = EXCLUDED.params, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	saved := preset
	err = r.pool.QueryRow(ctx, query, preset.ID, preset.Name, paramsJSON, preset.CreatedAt).
		Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			repoLogger.Error("Failed to save preset", err, port.Fields{"pg_code": pgErr.Code})
		} else {
			repoLogger.Error("Failed to save preset", err, nil)
		}
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	repoLogger.Debug("Preset saved.", port.Fields{"preset_id": saved.ID})
	return &saved, nil
}

// List возвращает все пресеты, новые первыми.
func (r *PostgresPresetRepository) List(ctx context.Context) ([]domain.SearchPreset, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPresetRepository",
		"method":    "List",
	})

	query := `SELECT id, name, params, created_at, updated_at FROM search_presets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		repoLogger.Error("Failed to query presets", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]domain.SearchPreset, 0)
	for rows.Next() {
		var preset domain.SearchPreset
		var paramsJSON []byte
		if err := rows.Scan(&preset.ID, &preset.Name, &paramsJSON, &preset.CreatedAt, &preset.UpdatedAt); err != nil {
			repoLogger.Error("Failed to scan preset row", err, nil)
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if err := json.Unmarshal(paramsJSON, &preset.Params); err != nil {
			repoLogger.Error("Failed to decode preset params", err, port.Fields{"preset_id": preset.ID})
			return nil, fmt.Errorf("failed to decode preset params: %w", err)
		}
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during preset iteration", err, nil)
		return nil, fmt.Errorf("error during preset iteration: %w", err)
	}

	return presets, nil
}

// Delete удаляет пресет по id.
func (r *PostgresPresetRepository) Delete(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPresetRepository",
		"method":    "Delete",
		"preset_id": id,
	})

	query := `DELETE FROM search_presets WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		repoLogger.Error("Failed to delete preset", err, port.Fields{"query": query})
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to delete a preset that did not exist.", nil)
		return domain.ErrPresetNotFound
	}

	repoLogger.Debug("Preset deleted.", nil)
	return nil
}

// GetByName возвращает пресет по имени.
func (r *PostgresPresetRepository) GetByName(ctx context.Context, name string) (*domain.SearchPreset, error) {
	query := `SELECT id, name, params, created_at, updated_at FROM search_presets WHERE name = $1`

	var preset domain.SearchPreset
	var paramsJSON []byte
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&preset.ID, &preset.Name, &paramsJSON, &preset.CreatedAt, &preset.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPresetNotFound
		}
		return nil, fmt.Errorf("failed to query preset by name: %w", err)
	}
	if err := json.Unmarshal(paramsJSON, &preset.Params); err != nil {
		return nil, fmt.Errorf("failed to decode preset params: %w", err)
	}
	return &preset, nil
}
