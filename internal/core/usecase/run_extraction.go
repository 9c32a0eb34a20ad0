package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// RunExtractionConfig — параметры обращений к внешнему scraping-сервису.
type RunExtractionConfig struct {
	ScrapeWaitFor time.Duration
	ScrapeTimeout time.Duration
	ScrapeFormats []string
	CrawlLimit    int
}

// RunExtractionUseCase — пайплайн извлечения целиком: URL → scrape/crawl →
// трансформация → валидация → AI-fallback → staging. Один прогон
// обрабатывается от начала до конца; независимые прогоны могут идти
// параллельно, общего изменяемого состояния у них нет.
type RunExtractionUseCase struct {
	urls       port.SearchURLPort
	scraper    port.ScrapeClientPort
	awaitCrawl *AwaitCrawlUseCase
	ai         port.AIExtractorPort
	staging    port.StagingRepositoryPort
	reporter   port.ExtractionReporterPort
	clock      port.ClockPort
	cfg        RunExtractionConfig
}

func NewRunExtractionUseCase(
	urls port.SearchURLPort,
	scraper port.ScrapeClientPort,
	awaitCrawl *AwaitCrawlUseCase,
	ai port.AIExtractorPort,
	staging port.StagingRepositoryPort,
	reporter port.ExtractionReporterPort,
	clock port.ClockPort,
	cfg RunExtractionConfig,
) *RunExtractionUseCase {
	if cfg.ScrapeWaitFor <= 0 {
		cfg.ScrapeWaitFor = 2 * time.Second
	}
	if cfg.ScrapeTimeout <= 0 {
		cfg.ScrapeTimeout = 30 * time.Second
	}
	if len(cfg.ScrapeFormats) == 0 {
		cfg.ScrapeFormats = []string{"markdown", "json"}
	}
	if cfg.CrawlLimit <= 0 {
		cfg.CrawlLimit = 10
	}
	return &RunExtractionUseCase{
		urls:       urls,
		scraper:    scraper,
		awaitCrawl: awaitCrawl,
		ai:         ai,
		staging:    staging,
		reporter:   reporter,
		clock:      clock,
		cfg:        cfg,
	}
}

// ExtractFromURL прогоняет одну страницу объявления через пайплайн.
func (uc *RunExtractionUseCase) ExtractFromURL(ctx context.Context, url string) (*domain.StagedResultSet, error) {
	return uc.runSinglePage(ctx, url, nil)
}

// ExtractFromSearch строит URL портала из параметров и прогоняет его.
// Некорректные параметры фатальны для запроса и отсекаются ДО любого
// обращения к внешнему сервису.
func (uc *RunExtractionUseCase) ExtractFromSearch(ctx context.Context, params domain.SearchParameters, multiPage bool) (*domain.StagedResultSet, error) {
	targetURL, err := uc.urls.BuildURL(params)
	if err != nil {
		return nil, err
	}
	if multiPage {
		return uc.runCrawl(ctx, targetURL, &params)
	}
	return uc.runSinglePage(ctx, targetURL, &params)
}

func (uc *RunExtractionUseCase) runSinglePage(ctx context.Context, url string, searchParams *domain.SearchParameters) (*domain.StagedResultSet, error) {
	logger := uc.runLogger(ctx, url)
	startedAt := uc.clock.Now()

	logger.Info("Starting single-page extraction", nil)

	payload, err := uc.scraper.Scrape(ctx, url, port.ScrapeOptions{
		WaitFor: uc.cfg.ScrapeWaitFor,
		Timeout: uc.cfg.ScrapeTimeout,
		Formats: uc.cfg.ScrapeFormats,
	})
	if err != nil {
		logger.Error("Scrape call failed", err, nil)
		return nil, err
	}
	if payload == nil || (payload.Markdown == "" && payload.HTML == "" && !payload.HasStructured()) {
		logger.Error("Scrape returned no content", domain.ErrNoContent, nil)
		return nil, domain.ErrNoContent
	}

	return uc.finishRun(ctx, logger, []domain.RawScrapePayload{*payload}, url, searchParams, "", startedAt)
}

func (uc *RunExtractionUseCase) runCrawl(ctx context.Context, url string, searchParams *domain.SearchParameters) (*domain.StagedResultSet, error) {
	logger := uc.runLogger(ctx, url)
	startedAt := uc.clock.Now()

	logger.Info("Starting multi-page extraction", port.Fields{"limit": uc.cfg.CrawlLimit})

	job, err := uc.scraper.StartCrawl(ctx, url, port.CrawlOptions{
		Limit: uc.cfg.CrawlLimit,
		Scrape: port.ScrapeOptions{
			WaitFor: uc.cfg.ScrapeWaitFor,
			Timeout: uc.cfg.ScrapeTimeout,
			Formats: uc.cfg.ScrapeFormats,
		},
	})
	if err != nil {
		logger.Error("Failed to dispatch crawl job", err, nil)
		return nil, err
	}

	payloads, err := uc.awaitCrawl.Execute(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	return uc.finishRun(ctx, logger, payloads, url, searchParams, job.ID, startedAt)
}

// finishRun — общий хвост обоих режимов: трансформация, валидация,
// AI-fallback, staging и отчет.
func (uc *RunExtractionUseCase) finishRun(
	ctx context.Context,
	logger port.LoggerPort,
	payloads []domain.RawScrapePayload,
	url string,
	searchParams *domain.SearchParameters,
	jobID string,
	startedAt time.Time,
) (*domain.StagedResultSet, error) {
	scrapedAt := uc.clock.Now()

	records := TransformPayloads(ctx, payloads, url, searchParams, scrapedAt)
	for i := range records {
		records[i].ValidationErrors = ValidateRecord(records[i])
	}

	result := domain.ExtractionResult{
		Success:     true,
		Records:     records,
		RawPayloads: payloads,
		Metadata: domain.ExtractionMetadata{
			URL:          url,
			ScrapedAt:    scrapedAt,
			SearchParams: searchParams,
			JobID:        jobID,
			CreditsUsed:  sumCredits(payloads),
		},
	}

	aiRecords := 0
	if len(records) == 0 && len(payloads) > 0 {
		aiRecords = uc.applyAIFallback(ctx, logger, payloads[0], url, searchParams, &result)
	}
	result.Metadata.TotalFound = len(result.Records)

	staged, err := uc.staging.Put(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to stage extraction result: %w", err)
	}

	uc.reportRun(ctx, logger, result, aiRecords, startedAt)

	logger.Info("Extraction run staged for review", port.Fields{
		"staging_id": staged.ID,
		"records":    len(result.Records),
		"has_uispec": result.UISpec != nil,
	})
	return staged, nil
}

// applyAIFallback вызывает вторичный AI-сервис и исчерпывающе разбирает
// его размеченный ответ: либо записи, либо UI-спецификация, никогда смесь.
// Сбой AI не валит прогон — остаёмся с тем, что дал структурированный путь.
func (uc *RunExtractionUseCase) applyAIFallback(
	ctx context.Context,
	logger port.LoggerPort,
	payload domain.RawScrapePayload,
	url string,
	searchParams *domain.SearchParameters,
	result *domain.ExtractionResult,
) int {
	logger.Info("Structured path yielded nothing, invoking AI fallback", nil)

	outcome, err := uc.ai.Extract(ctx, payload, url, searchParams)
	if err != nil {
		aiErr := &domain.AIExtractionError{Err: err}
		logger.Error("AI fallback failed, keeping structured results", aiErr, nil)
		return 0
	}

	switch v := outcome.(type) {
	case domain.ExtractedProperties:
		for i := range v.Records {
			v.Records[i].ValidationErrors = ValidateRecord(v.Records[i])
		}
		result.Records = append(result.Records, v.Records...)
		result.Metadata.AIMeta = &v.Meta
		logger.Info("AI fallback produced property records", port.Fields{
			"records": len(v.Records),
			"model":   v.Meta.Model,
		})
		return len(v.Records)

	case domain.UISpecification:
		// Вариант с презентацией: ноль канонических записей, spec целиком
		// уходит ревьюеру. Трактовать его как данные объявлений нельзя.
		result.UISpec = v.Spec
		result.Metadata.AIMeta = &v.Meta
		logger.Info("AI fallback returned a UI specification instead of records", nil)
		return 0

	default:
		logger.Warn("AI fallback returned an unknown outcome variant, ignoring it", port.Fields{
			"outcome": fmt.Sprintf("%T", outcome),
		})
		return 0
	}
}

func (uc *RunExtractionUseCase) reportRun(ctx context.Context, logger port.LoggerPort, result domain.ExtractionResult, aiRecords int, startedAt time.Time) {
	withIssues := 0
	for _, record := range result.Records {
		if len(record.ValidationErrors) > 0 {
			withIssues++
		}
	}

	report := domain.ExtractionReport{
		RunID:             uuid.New().String(),
		SourceURL:         result.Metadata.URL,
		RecordsExtracted:  len(result.Records),
		RecordsWithIssues: withIssues,
		AIRecords:         aiRecords,
		CreditsUsed:       result.Metadata.CreditsUsed,
		DurationMs:        uc.clock.Now().Sub(startedAt).Milliseconds(),
	}

	// Отчет не должен проваливать успешный прогон.
	if err := uc.reporter.ReportRun(ctx, report); err != nil {
		logger.Error("Failed to publish extraction report", err, nil)
	}
}

func (uc *RunExtractionUseCase) runLogger(ctx context.Context, url string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RunExtraction",
		"url":      url,
	})
}

func sumCredits(payloads []domain.RawScrapePayload) float64 {
	var total float64
	for _, p := range payloads {
		total += p.Metadata.CreditsUsed
	}
	return total
}
