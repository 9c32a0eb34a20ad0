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

// StartCrawl отправляет асинхронную multi-page задачу и возвращает ее id.
func (a *ScrapeAPIAdapter) StartCrawl(ctx context.Context, targetURL string, opts port.CrawlOptions) (*domain.CrawlJob, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ScrapeAPIAdapter(StartCrawl)",
		"url":       targetURL,
	})

	body, err := json.Marshal(crawlRequest{
		URL:          targetURL,
		Limit:        opts.Limit,
		IncludePaths: opts.IncludePaths,
		ScrapeOptions: scrapeRequest{
			Formats: opts.Scrape.Formats,
			WaitFor: opts.Scrape.WaitFor.Milliseconds(),
			Timeout: opts.Scrape.Timeout.Milliseconds(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("crawl adapter: failed to encode request: %w", err)
	}

	collector := a.collector.Clone()
	a.authorize(collector)

	var job *domain.CrawlJob
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		var resp crawlResponse
		if jsonErr := json.Unmarshal(r.Body, &resp); jsonErr != nil {
			responseErr = &domain.ExternalServiceError{
				Operation:  "crawl",
				StatusCode: r.StatusCode,
				Err:        fmt.Errorf("undecodable response body: %w", jsonErr),
			}
			return
		}
		if !resp.Success || resp.ID == "" {
			responseErr = &domain.ExternalServiceError{
				Operation:  "crawl",
				StatusCode: r.StatusCode,
				Err:        errors.New(resp.Error),
			}
			return
		}
		job = &domain.CrawlJob{ID: resp.ID}
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Crawl dispatch failed", err, port.Fields{"status": r.StatusCode})
		responseErr = &domain.ExternalServiceError{
			Operation:  "crawl",
			StatusCode: r.StatusCode,
			Err:        err,
		}
	})

	if visitErr := collector.PostRaw(a.baseURL+"/v1/crawl", body); visitErr != nil {
		logger.Error("Failed to initiate crawl request", visitErr, nil)
		return nil, &domain.ExternalServiceError{Operation: "crawl", Err: visitErr}
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if job == nil {
		// Ни один callback не сработал — ответа не было вовсе.
		return nil, &domain.ExternalServiceError{Operation: "crawl", Err: errors.New("no response received")}
	}

	logger.Info("Crawl job dispatched", port.Fields{"job_id": job.ID})
	return job, nil
}

// CrawlStatus запрашивает текущее состояние асинхронной задачи.
func (a *ScrapeAPIAdapter) CrawlStatus(ctx context.Context, jobID string) (*domain.CrawlJobStatus, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ScrapeAPIAdapter(CrawlStatus)",
		"job_id":    jobID,
	})

	collector := a.collector.Clone()
	a.authorize(collector)

	var status *domain.CrawlJobStatus
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		var resp crawlStatusResponse
		if jsonErr := json.Unmarshal(r.Body, &resp); jsonErr != nil {
			responseErr = &domain.ExternalServiceError{
				Operation:  "crawl status",
				StatusCode: r.StatusCode,
				Err:        fmt.Errorf("undecodable response body: %w", jsonErr),
			}
			return
		}

		pages := make([]domain.RawScrapePayload, 0, len(resp.Data))
		for _, page := range resp.Data {
			pages = append(pages, page.toDomain())
		}
		status = &domain.CrawlJobStatus{
			Status:       resp.Status,
			Completed:    resp.Completed,
			Total:        resp.Total,
			Data:         pages,
			ErrorMessage: resp.Error,
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Warn("Crawl status request failed", port.Fields{
			"status": r.StatusCode,
			"error":  err.Error(),
		})
		responseErr = &domain.ExternalServiceError{
			Operation:  "crawl status",
			StatusCode: r.StatusCode,
			Err:        err,
		}
	})

	if visitErr := collector.Visit(a.baseURL + "/v1/crawl/" + jobID); visitErr != nil {
		return nil, &domain.ExternalServiceError{Operation: "crawl status", Err: visitErr}
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if status == nil {
		return nil, &domain.ExternalServiceError{Operation: "crawl status", Err: errors.New("no response received")}
	}
	return status, nil
}
