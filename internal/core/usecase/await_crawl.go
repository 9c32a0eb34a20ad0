package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultPollMaxAttempts = 60
)

// CrawlPollingConfig — бюджет цикла опроса crawl-задачи.
type CrawlPollingConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// AwaitCrawlUseCase — маленькая явная машина состояний:
// started → polling → {completed | failed | timed_out}.
// Часы внедряются портом, чтобы тесты не ждали реального времени.
type AwaitCrawlUseCase struct {
	client port.ScrapeClientPort
	clock  port.ClockPort
	cfg    CrawlPollingConfig
}

func NewAwaitCrawlUseCase(client port.ScrapeClientPort, clock port.ClockPort, cfg CrawlPollingConfig) *AwaitCrawlUseCase {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultPollMaxAttempts
	}
	return &AwaitCrawlUseCase{client: client, clock: clock, cfg: cfg}
}

// Execute опрашивает статус задачи до завершения, отказа или исчерпания
// бюджета попыток. Отмена контекста прекращает опрос локально;
// уже запущенную задачу у внешнего сервиса мы не отменяем.
func (uc *AwaitCrawlUseCase) Execute(ctx context.Context, jobID string) ([]domain.RawScrapePayload, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "AwaitCrawl",
		"job_id":   jobID,
	})
	logger.Info("Crawl job dispatched, entering polling loop", port.Fields{
		"interval_ms":  uc.cfg.Interval.Milliseconds(),
		"max_attempts": uc.cfg.MaxAttempts,
	})

	var lastStatusErr error
	for attempt := 1; attempt <= uc.cfg.MaxAttempts; attempt++ {
		if err := uc.clock.Sleep(ctx, uc.cfg.Interval); err != nil {
			logger.Warn("Polling abandoned by caller", port.Fields{"attempt": attempt})
			return nil, err
		}

		status, err := uc.client.CrawlStatus(ctx, jobID)
		if err != nil {
			// Переходные сбои самого опроса терпим, пока не кончится бюджет.
			lastStatusErr = err
			logger.Warn("Status check failed, retrying within attempt budget", port.Fields{
				"attempt": attempt,
				"error":   err.Error(),
			})
			continue
		}
		lastStatusErr = nil

		switch status.Status {
		case domain.CrawlStatusCompleted:
			logger.Info("Crawl job completed", port.Fields{
				"attempts": attempt,
				"pages":    len(status.Data),
			})
			return status.Data, nil

		case domain.CrawlStatusFailed:
			err := &domain.ExternalServiceError{
				Operation: "crawl",
				Err:       errors.New(status.ErrorMessage),
			}
			logger.Error("Crawl job reported failure", err, port.Fields{"attempt": attempt})
			return nil, err

		default:
			logger.Debug("Crawl job still in progress", port.Fields{
				"attempt":   attempt,
				"completed": status.Completed,
				"total":     status.Total,
			})
		}
	}

	// Если бюджет кончился на транспортной ошибке — это сбой опроса,
	// а не таймаут задачи.
	if lastStatusErr != nil {
		return nil, &domain.ExternalServiceError{Operation: "crawl status", Err: lastStatusErr}
	}

	timeoutErr := &domain.PollingTimeoutError{JobID: jobID, Attempts: uc.cfg.MaxAttempts}
	logger.Error("Crawl job did not finish within attempt budget", timeoutErr, nil)
	return nil, timeoutErr
}
