package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

func pollingConfig(maxAttempts int) CrawlPollingConfig {
	return CrawlPollingConfig{Interval: 5 * time.Second, MaxAttempts: maxAttempts}
}

func TestAwaitCrawlCompletesAfterProgress(t *testing.T) {
	scraping := &domain.CrawlJobStatus{Status: domain.CrawlStatusScraping, Completed: 3, Total: 10}
	done := &domain.CrawlJobStatus{
		Status: domain.CrawlStatusCompleted,
		Data: []domain.RawScrapePayload{
			{Markdown: "# Office A"},
			{Markdown: "# Office B"},
		},
	}
	client := &fakeScrapeClient{statusSeq: []statusStep{
		{status: scraping},
		{status: scraping},
		{status: scraping},
		{status: done},
	}}
	clock := newFakeClock()

	uc := NewAwaitCrawlUseCase(client, clock, pollingConfig(60))
	payloads, err := uc.Execute(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}
	if client.statusCalls != 4 {
		t.Errorf("expected exactly 4 status calls, got %d", client.statusCalls)
	}
	if clock.sleeps != 4 {
		t.Errorf("expected a sleep before each status call, got %d sleeps", clock.sleeps)
	}
}

func TestAwaitCrawlTimesOutAfterBudget(t *testing.T) {
	scraping := &domain.CrawlJobStatus{Status: domain.CrawlStatusScraping}
	client := &fakeScrapeClient{statusSeq: []statusStep{{status: scraping}}}
	clock := newFakeClock()

	uc := NewAwaitCrawlUseCase(client, clock, pollingConfig(7))
	_, err := uc.Execute(context.Background(), "job-slow")

	var timeoutErr *domain.PollingTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected PollingTimeoutError, got %v", err)
	}
	if timeoutErr.JobID != "job-slow" || timeoutErr.Attempts != 7 {
		t.Errorf("unexpected timeout details: %+v", timeoutErr)
	}
	if client.statusCalls != 7 {
		t.Errorf("expected exactly 7 status calls, got %d", client.statusCalls)
	}
}

func TestAwaitCrawlFailedJob(t *testing.T) {
	client := &fakeScrapeClient{statusSeq: []statusStep{
		{status: &domain.CrawlJobStatus{Status: domain.CrawlStatusScraping}},
		{status: &domain.CrawlJobStatus{Status: domain.CrawlStatusFailed, ErrorMessage: "blocked by robots.txt"}},
	}}

	uc := NewAwaitCrawlUseCase(client, newFakeClock(), pollingConfig(60))
	_, err := uc.Execute(context.Background(), "job-2")

	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.Operation != "crawl" {
		t.Errorf("expected operation %q, got %q", "crawl", svcErr.Operation)
	}
}

func TestAwaitCrawlTransientStatusErrorsConsumeAttempts(t *testing.T) {
	done := &domain.CrawlJobStatus{
		Status: domain.CrawlStatusCompleted,
		Data:   []domain.RawScrapePayload{{Markdown: "# ok"}},
	}
	client := &fakeScrapeClient{statusSeq: []statusStep{
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
		{status: done},
	}}

	uc := NewAwaitCrawlUseCase(client, newFakeClock(), pollingConfig(60))
	payloads, err := uc.Execute(context.Background(), "job-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
	if client.statusCalls != 3 {
		t.Errorf("expected 3 status calls, got %d", client.statusCalls)
	}
}

func TestAwaitCrawlBudgetEndingOnStatusError(t *testing.T) {
	client := &fakeScrapeClient{statusSeq: []statusStep{
		{err: errors.New("bad gateway")},
	}}

	uc := NewAwaitCrawlUseCase(client, newFakeClock(), pollingConfig(3))
	_, err := uc.Execute(context.Background(), "job-4")

	// Бюджет кончился на транспортной ошибке: это сбой опроса, не таймаут.
	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.Operation != "crawl status" {
		t.Errorf("expected operation %q, got %q", "crawl status", svcErr.Operation)
	}
	var timeoutErr *domain.PollingTimeoutError
	if errors.As(err, &timeoutErr) {
		t.Errorf("did not expect a timeout error, got %v", err)
	}
}

func TestAwaitCrawlCancellationAbandonsLocally(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := &cancellingClock{cancelOn: 2, cancel: cancel}
	client := &fakeScrapeClient{statusSeq: []statusStep{
		{status: &domain.CrawlJobStatus{Status: domain.CrawlStatusScraping}},
	}}

	uc := NewAwaitCrawlUseCase(client, clock, pollingConfig(60))
	_, err := uc.Execute(ctx, "job-5")

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Отмена локальная: повторных обращений к сервису после нее нет.
	if client.statusCalls != 1 {
		t.Errorf("expected 1 status call before cancellation, got %d", client.statusCalls)
	}
}
