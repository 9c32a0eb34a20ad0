package port

import (
	"context"
	"time"
)

// ClockPort абстрагирует время для цикла опроса crawl-задач,
// чтобы тесты могли симулировать ожидание без реальных задержек.
type ClockPort interface {
	Now() time.Time

	// Sleep блокируется на d или до отмены контекста.
	// При отмене возвращает ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}
