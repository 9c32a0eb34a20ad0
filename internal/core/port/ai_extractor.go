package port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// AIExtractorPort — запасной путь извлечения: сырой контент плюс целевая
// схема уходят во вторичный AI-сервис. Ответ — размеченное объединение
// domain.AIOutcome (записи ИЛИ UI-спецификация).
type AIExtractorPort interface {
	Extract(ctx context.Context, payload domain.RawScrapePayload, sourceURL string, hints *domain.SearchParameters) (domain.AIOutcome, error)
}
