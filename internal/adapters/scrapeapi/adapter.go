package scrapeapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ScrapeAPIAdapter отвечает за все взаимодействия с внешним scraping-сервисом.
// Учетные данные привязываются один раз при создании; ядро получает готовый
// клиент и не знает, какой вендор за ним стоит.
type ScrapeAPIAdapter struct {
	// родительский коллектор, который разделяет лимиты
	collector *colly.Collector
	baseURL   string
	apiKey    string
}

// NewScrapeAPIAdapter - конструктор
func NewScrapeAPIAdapter(baseURL, apiKey string) (*ScrapeAPIAdapter, error) {
	if baseURL == "" || apiKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("ScrapeAPIAdapter: invalid base URL %q", baseURL)
	}

	// родительский коллектор; каждый вызов работает на своем клоне.
	// colly сверяет AllowedDomains с Hostname() запроса, без порта.
	c := colly.NewCollector(colly.AllowedDomains(parsed.Hostname()), colly.AllowURLRevisit())

	// Эти правила будут наследоваться всеми клонами коллектора
	err = c.Limit(&colly.LimitRule{
		DomainGlob: parsed.Hostname(),

		// Параллелизм на уровне HTTP-запросов
		Parallelism: 2,

		RandomDelay: 500 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("ScrapeAPIAdapter: failed to set limit rule: %w", err)
	}

	return &ScrapeAPIAdapter{
		collector: c,
		baseURL:   baseURL,
		apiKey:    apiKey,
	}, nil
}

// authorize навешивает учетные данные на каждый запрос клона.
func (a *ScrapeAPIAdapter) authorize(collector *colly.Collector) {
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Authorization", "Bearer "+a.apiKey)
		r.Headers.Set("Content-Type", "application/json")
	})
}
