package port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// PropertyImporterPort — коллаборатор-хранилище каталога.
// Одобренные записи уходят к нему как есть; долговременных записей
// этот сервис сам не делает.
type PropertyImporterPort interface {
	BulkImport(ctx context.Context, req domain.BulkImportRequest) (*domain.BulkImportResult, error)
}
