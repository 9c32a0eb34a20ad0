package scrapeapi

import (
	"encoding/json"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats,omitempty"`
	WaitFor int64    `json:"waitFor,omitempty"`
	Timeout int64    `json:"timeout,omitempty"`
}

type scrapeResponse struct {
	Success bool       `json:"success"`
	Data    scrapeData `json:"data"`
	Error   string     `json:"error,omitempty"`
}

type scrapeData struct {
	Markdown string          `json:"markdown,omitempty"`
	HTML     string          `json:"html,omitempty"`
	JSON     json.RawMessage `json:"json,omitempty"`
	Metadata scrapeMetadata  `json:"metadata"`
}

type scrapeMetadata struct {
	StatusCode  int     `json:"statusCode"`
	CreditsUsed float64 `json:"creditsUsed"`
	ScrapeID    string  `json:"scrapeId,omitempty"`
	SourceURL   string  `json:"sourceURL,omitempty"`
}

type crawlRequest struct {
	URL           string        `json:"url"`
	Limit         int           `json:"limit,omitempty"`
	IncludePaths  []string      `json:"includePaths,omitempty"`
	ScrapeOptions scrapeRequest `json:"scrapeOptions"`
}

type crawlResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
}

type crawlStatusResponse struct {
	Status    string       `json:"status"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Data      []scrapeData `json:"data,omitempty"`
	Error     string       `json:"error,omitempty"`
}

func (d scrapeData) toDomain() domain.RawScrapePayload {
	return domain.RawScrapePayload{
		Markdown:   d.Markdown,
		HTML:       d.HTML,
		Structured: d.JSON,
		Metadata: domain.ScrapeMetadata{
			StatusCode:  d.Metadata.StatusCode,
			CreditsUsed: d.Metadata.CreditsUsed,
			JobID:       d.Metadata.ScrapeID,
			SourceURL:   d.Metadata.SourceURL,
		},
	}
}
