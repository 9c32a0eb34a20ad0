package domain

import "encoding/json"

// Статусы асинхронной crawl-задачи у внешнего сервиса.
const (
	CrawlStatusScraping  = "scraping"
	CrawlStatusCompleted = "completed"
	CrawlStatusFailed    = "failed"
)

// ScrapeMetadata — служебные данные внешнего сервиса по одной странице.
type ScrapeMetadata struct {
	StatusCode  int     `json:"statusCode"`
	CreditsUsed float64 `json:"creditsUsed"`
	JobID       string  `json:"jobId,omitempty"`
	SourceURL   string  `json:"sourceUrl,omitempty"`
}

// RawScrapePayload — непрозрачный "мешок" контента одной страницы.
// Секции опциональны; глубже, чем "эти секции есть/нет", не типизируем —
// формат ответа принадлежит вендору.
type RawScrapePayload struct {
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`

	// Structured — schema-guided блок, если вендор его вернул.
	Structured json.RawMessage `json:"json,omitempty"`

	Metadata ScrapeMetadata `json:"metadata"`
}

// HasStructured сообщает, есть ли в payload структурированный блок.
func (p RawScrapePayload) HasStructured() bool {
	return len(p.Structured) > 0 && string(p.Structured) != "null"
}

// CrawlJob — принятая внешним сервисом асинхронная задача.
type CrawlJob struct {
	ID string
}

// CrawlJobStatus — снимок состояния crawl-задачи на момент опроса.
type CrawlJobStatus struct {
	Status       string
	Completed    int
	Total        int
	Data         []RawScrapePayload
	ErrorMessage string
}
