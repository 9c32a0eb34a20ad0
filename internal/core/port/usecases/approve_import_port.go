package usecases_port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ApproveImportPort — однократное одобрение staged-набора и передача
// одобренного (возможно, отредактированного) подмножества в хранилище.
type ApproveImportPort interface {
	Execute(ctx context.Context, stagingID string, req domain.BulkImportRequest) (*domain.BulkImportResult, error)
}
