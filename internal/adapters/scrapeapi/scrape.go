package scrapeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gocolly/colly/v2"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// Scrape выполняет один блокирующий запрос страницы у внешнего сервиса.
// Повторов нет: каждый вызов оплачивается отдельно, ретрай — решение
// вызывающего.
func (a *ScrapeAPIAdapter) Scrape(ctx context.Context, targetURL string, opts port.ScrapeOptions) (*domain.RawScrapePayload, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ScrapeAPIAdapter(Scrape)",
		"url":       targetURL,
	})

	body, err := json.Marshal(scrapeRequest{
		URL:     targetURL,
		Formats: opts.Formats,
		WaitFor: opts.WaitFor.Milliseconds(),
		Timeout: opts.Timeout.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("scrape adapter: failed to encode request: %w", err)
	}

	// Одноразовый клон: наследует лимиты, но имеет свои обработчики
	collector := a.collector.Clone()
	a.authorize(collector)

	var payload *domain.RawScrapePayload
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		var resp scrapeResponse
		if jsonErr := json.Unmarshal(r.Body, &resp); jsonErr != nil {
			responseErr = &domain.ExternalServiceError{
				Operation:  "scrape",
				StatusCode: r.StatusCode,
				Err:        fmt.Errorf("undecodable response body: %w", jsonErr),
			}
			return
		}
		if !resp.Success {
			responseErr = &domain.ExternalServiceError{
				Operation:  "scrape",
				StatusCode: r.StatusCode,
				Err:        errors.New(resp.Error),
			}
			return
		}
		mapped := resp.Data.toDomain()
		payload = &mapped
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Scrape request failed", err, port.Fields{"status": r.StatusCode})
		responseErr = &domain.ExternalServiceError{
			Operation:  "scrape",
			StatusCode: r.StatusCode,
			Err:        err,
		}
	})

	if visitErr := collector.PostRaw(a.baseURL+"/v1/scrape", body); visitErr != nil {
		logger.Error("Failed to initiate scrape request", visitErr, nil)
		return nil, &domain.ExternalServiceError{Operation: "scrape", Err: visitErr}
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if payload == nil {
		return nil, domain.ErrNoContent
	}

	logger.Debug("Scrape finished", port.Fields{
		"status_code":  payload.Metadata.StatusCode,
		"credits_used": payload.Metadata.CreditsUsed,
	})
	return payload, nil
}
