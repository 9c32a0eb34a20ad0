package usecases_port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// RunExtractionPort — входной порт пайплайна извлечения.
type RunExtractionPort interface {
	// ExtractFromURL прогоняет одну страницу объявления.
	ExtractFromURL(ctx context.Context, url string) (*domain.StagedResultSet, error)

	// ExtractFromSearch строит URL из параметров поиска и прогоняет его.
	// multiPage=true запускает асинхронный crawl с опросом статуса.
	ExtractFromSearch(ctx context.Context, params domain.SearchParameters, multiPage bool) (*domain.StagedResultSet, error)
}
