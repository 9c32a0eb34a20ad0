package usecase

import (
	"context"
	"fmt"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// ApproveImportUseCase переводит отложенный результат извлечения в каталог.
// Подтверждение одноразовое: пометка в staging ставится ДО импорта, поэтому
// повторный запрос по тому же набору отклоняется даже при гонке.
type ApproveImportUseCase struct {
	staging  port.StagingRepositoryPort
	importer port.PropertyImporterPort
	reporter port.ExtractionReporterPort
}

func NewApproveImportUseCase(
	staging port.StagingRepositoryPort,
	importer port.PropertyImporterPort,
	reporter port.ExtractionReporterPort,
) *ApproveImportUseCase {
	return &ApproveImportUseCase{
		staging:  staging,
		importer: importer,
		reporter: reporter,
	}
}

func (uc *ApproveImportUseCase) Execute(ctx context.Context, stagingID string, req domain.BulkImportRequest) (*domain.BulkImportResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApproveImport",
		"staging_id": stagingID,
	})

	staged, err := uc.staging.MarkApproved(ctx, stagingID)
	if err != nil {
		logger.Warn("Approval rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	records := staged.Result.Records
	if len(req.Records) > 0 {
		// Ревьюер мог отредактировать записи перед подтверждением,
		// тогда импортируется присланная версия, а не отложенная.
		records = req.Records
	}
	if len(records) == 0 {
		return nil, domain.ErrNoContent
	}

	logger.Info("Importing approved records into the catalog", port.Fields{
		"records":            len(records),
		"skip_validation":    req.SkipValidation,
		"overwrite_existing": req.OverwriteExisting,
	})

	result, err := uc.importer.BulkImport(ctx, domain.BulkImportRequest{
		Records:           records,
		SkipValidation:    req.SkipValidation,
		OverwriteExisting: req.OverwriteExisting,
	})
	if err != nil {
		logger.Error("Bulk import failed", err, nil)
		return nil, fmt.Errorf("failed to import approved records: %w", err)
	}

	uc.reportImport(ctx, logger, staged, result)

	logger.Info("Bulk import finished", port.Fields{
		"imported": result.Imported,
		"failed":   result.Failed,
	})
	return result, nil
}

func (uc *ApproveImportUseCase) reportImport(ctx context.Context, logger port.LoggerPort, staged *domain.StagedResultSet, result *domain.BulkImportResult) {
	report := domain.ImportReport{
		StagingID: staged.ID,
		SourceURL: staged.Result.Metadata.URL,
		Imported:  result.Imported,
		Failed:    result.Failed,
	}
	if err := uc.reporter.ReportImport(ctx, report); err != nil {
		logger.Error("Failed to publish import report", err, nil)
	}
}
