package port

import (
	"context"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ScrapeOptions — настройки одного блокирующего scrape-вызова.
type ScrapeOptions struct {
	// WaitFor — сколько внешний сервис ждет догрузки контента на странице.
	WaitFor time.Duration
	// Timeout — общий таймаут вызова.
	Timeout time.Duration
	// Formats — какие секции контента запрашиваем (markdown, html, json).
	Formats []string
}

// CrawlOptions — настройки асинхронной multi-page задачи.
type CrawlOptions struct {
	Limit        int
	IncludePaths []string
	Scrape       ScrapeOptions
}

// ScrapeClientPort объединяет все операции внешнего scraping-сервиса.
// Один клиент с привязанными учетными данными создается в composition root
// и внедряется в пайплайн; ядро не знает, какой вендор за ним стоит.
type ScrapeClientPort interface {
	// Scrape выполняет один блокирующий запрос страницы.
	// Без внутренних ретраев: повтор — это повторно оплаченный вызов.
	Scrape(ctx context.Context, url string, opts ScrapeOptions) (*domain.RawScrapePayload, error)

	// StartCrawl отправляет асинхронную задачу и возвращает ее id.
	StartCrawl(ctx context.Context, url string, opts CrawlOptions) (*domain.CrawlJob, error)

	// CrawlStatus запрашивает текущее состояние задачи.
	CrawlStatus(ctx context.Context, jobID string) (*domain.CrawlJobStatus, error)
}
