package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// fakeClock отсчитывает время мгновенно и запоминает количество ожиданий.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps++
	c.now = c.now.Add(d)
	return nil
}

// cancellingClock отменяет контекст на заданном по счету ожидании.
type cancellingClock struct {
	fakeClock
	cancelOn int
	cancel   context.CancelFunc
}

func (c *cancellingClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps++
	if c.sleeps >= c.cancelOn {
		c.cancel()
	}
	return ctx.Err()
}

type scrapeCall struct {
	url string
}

// fakeScrapeClient разыгрывает заранее заданные ответы.
type fakeScrapeClient struct {
	mu          sync.Mutex
	scrapeCalls []scrapeCall

	scrapePayload *domain.RawScrapePayload
	scrapeErr     error

	crawlJob *domain.CrawlJob
	crawlErr error

	statusSeq   []statusStep
	statusCalls int
}

type statusStep struct {
	status *domain.CrawlJobStatus
	err    error
}

func (f *fakeScrapeClient) Scrape(_ context.Context, url string, _ port.ScrapeOptions) (*domain.RawScrapePayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrapeCalls = append(f.scrapeCalls, scrapeCall{url: url})
	return f.scrapePayload, f.scrapeErr
}

func (f *fakeScrapeClient) StartCrawl(_ context.Context, _ string, _ port.CrawlOptions) (*domain.CrawlJob, error) {
	return f.crawlJob, f.crawlErr
}

func (f *fakeScrapeClient) CrawlStatus(_ context.Context, _ string) (*domain.CrawlJobStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var step statusStep
	if f.statusCalls < len(f.statusSeq) {
		step = f.statusSeq[f.statusCalls]
	} else if len(f.statusSeq) > 0 {
		step = f.statusSeq[len(f.statusSeq)-1]
	}
	f.statusCalls++
	return step.status, step.err
}

// fakeAIExtractor возвращает подготовленный вариант AIOutcome.
type fakeAIExtractor struct {
	outcome domain.AIOutcome
	err     error
	calls   int
}

func (f *fakeAIExtractor) Extract(_ context.Context, _ domain.RawScrapePayload, _ string, _ *domain.SearchParameters) (domain.AIOutcome, error) {
	f.calls++
	return f.outcome, f.err
}

// fakeStaging — упрощенный in-memory отстойник для тестов пайплайна.
type fakeStaging struct {
	mu     sync.Mutex
	sets   map[string]*domain.StagedResultSet
	nextID int
	putErr error
}

func newFakeStaging() *fakeStaging {
	return &fakeStaging{sets: make(map[string]*domain.StagedResultSet)}
}

func (f *fakeStaging) Put(_ context.Context, result domain.ExtractionResult) (*domain.StagedResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.nextID++
	staged := &domain.StagedResultSet{
		ID:     fmt.Sprintf("staged-%d", f.nextID),
		Result: result,
	}
	f.sets[staged.ID] = staged
	return staged, nil
}

func (f *fakeStaging) Get(_ context.Context, id string) (*domain.StagedResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	staged, ok := f.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	return staged, nil
}

func (f *fakeStaging) List(_ context.Context) ([]domain.StagedResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.StagedResultSet, 0, len(f.sets))
	for _, s := range f.sets {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStaging) MarkApproved(_ context.Context, id string) (*domain.StagedResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	staged, ok := f.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	if staged.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	staged.Approved = true
	return staged, nil
}

// fakeReporter копит отчеты, опционально отказывая.
type fakeReporter struct {
	mu         sync.Mutex
	runReports []domain.ExtractionReport
	imports    []domain.ImportReport
	err        error
}

func (f *fakeReporter) ReportRun(_ context.Context, report domain.ExtractionReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runReports = append(f.runReports, report)
	return f.err
}

func (f *fakeReporter) ReportImport(_ context.Context, report domain.ImportReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, report)
	return f.err
}

// fakeURLBuilder возвращает фиксированный URL либо ошибку валидации.
type fakeURLBuilder struct {
	url string
	err error
}

func (f *fakeURLBuilder) BuildURL(_ domain.SearchParameters) (string, error) {
	return f.url, f.err
}

func (f *fakeURLBuilder) ParseURL(_ string) (domain.SearchParameters, error) {
	return domain.SearchParameters{}, nil
}

// fakeImporter фиксирует последний запрос на импорт.
type fakeImporter struct {
	lastReq *domain.BulkImportRequest
	result  *domain.BulkImportResult
	err     error
	calls   int
}

func (f *fakeImporter) BulkImport(_ context.Context, req domain.BulkImportRequest) (*domain.BulkImportResult, error) {
	f.calls++
	f.lastReq = &req
	return f.result, f.err
}
