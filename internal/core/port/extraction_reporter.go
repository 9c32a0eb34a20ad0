package port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ExtractionReporterPort публикует события-отчеты о прогонах извлечения
// и подтвержденных импортах. Ошибка отправки отчета не должна проваливать
// саму операцию.
type ExtractionReporterPort interface {
	ReportRun(ctx context.Context, report domain.ExtractionReport) error
	ReportImport(ctx context.Context, report domain.ImportReport) error
}
