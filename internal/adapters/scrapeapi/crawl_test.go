package scrapeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *ScrapeAPIAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewScrapeAPIAdapter(server.URL, "test-key")
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	return adapter
}

func crawlOptions() port.CrawlOptions {
	return port.CrawlOptions{
		Limit: 5,
		Scrape: port.ScrapeOptions{
			Formats: []string{"markdown", "json"},
			WaitFor: 2 * time.Second,
			Timeout: 30 * time.Second,
		},
	}
}

func TestStartCrawlReturnsJobID(t *testing.T) {
	var gotAuth string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/crawl" {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"success": true, "id": "job-42"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	job, err := adapter.StartCrawl(context.Background(), "https://www.officemarket.in/listings/bangalore/office-space", crawlOptions())
	if err != nil {
		t.Fatalf("StartCrawl returned error: %v", err)
	}
	if job.ID != "job-42" {
		t.Errorf("expected job id 'job-42', got %q", job.ID)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestStartCrawlVendorRejectionIsServiceError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/crawl" {
			w.Write([]byte(`{"success": false, "error": "quota exceeded"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := adapter.StartCrawl(context.Background(), "https://www.officemarket.in/listings", crawlOptions())

	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.Operation != "crawl" {
		t.Errorf("expected operation 'crawl', got %q", svcErr.Operation)
	}
}

func TestCrawlStatusMapsPages(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/crawl/job-42" {
			w.Write([]byte(`{
				"status": "completed",
				"completed": 2,
				"total": 2,
				"data": [
					{"markdown": "# Page one", "metadata": {"statusCode": 200, "creditsUsed": 1}},
					{"markdown": "# Page two", "metadata": {"statusCode": 200, "creditsUsed": 1}}
				]
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	status, err := adapter.CrawlStatus(context.Background(), "job-42")
	if err != nil {
		t.Fatalf("CrawlStatus returned error: %v", err)
	}
	if status.Status != domain.CrawlStatusCompleted {
		t.Errorf("expected status %q, got %q", domain.CrawlStatusCompleted, status.Status)
	}
	if status.Completed != 2 || status.Total != 2 {
		t.Errorf("unexpected progress: %d/%d", status.Completed, status.Total)
	}
	if len(status.Data) != 2 || status.Data[0].Markdown != "# Page one" {
		t.Errorf("pages were not mapped: %+v", status.Data)
	}
}

func TestCrawlStatusServerErrorIsServiceError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := adapter.CrawlStatus(context.Background(), "job-42")

	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.Operation != "crawl status" {
		t.Errorf("expected operation 'crawl status', got %q", svcErr.Operation)
	}
}
