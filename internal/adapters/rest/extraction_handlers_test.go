package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type fakeExtraction struct {
	staged *domain.StagedResultSet
	err    error
}

func (f *fakeExtraction) ExtractFromURL(_ context.Context, _ string) (*domain.StagedResultSet, error) {
	return f.staged, f.err
}

func (f *fakeExtraction) ExtractFromSearch(_ context.Context, _ domain.SearchParameters, _ bool) (*domain.StagedResultSet, error) {
	return f.staged, f.err
}

type fakeApproval struct {
	result *domain.BulkImportResult
	err    error

	lastStagingID string
	lastReq       domain.BulkImportRequest
}

func (f *fakeApproval) Execute(_ context.Context, stagingID string, req domain.BulkImportRequest) (*domain.BulkImportResult, error) {
	f.lastStagingID = stagingID
	f.lastReq = req
	return f.result, f.err
}

type fakeStagingRepo struct {
	sets map[string]domain.StagedResultSet
}

func (f *fakeStagingRepo) Put(_ context.Context, result domain.ExtractionResult) (*domain.StagedResultSet, error) {
	staged := domain.StagedResultSet{ID: "staged-1", Result: result}
	f.sets[staged.ID] = staged
	return &staged, nil
}

func (f *fakeStagingRepo) Get(_ context.Context, id string) (*domain.StagedResultSet, error) {
	staged, ok := f.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	return &staged, nil
}

func (f *fakeStagingRepo) List(_ context.Context) ([]domain.StagedResultSet, error) {
	out := make([]domain.StagedResultSet, 0, len(f.sets))
	for _, staged := range f.sets {
		out = append(out, staged)
	}
	return out, nil
}

func (f *fakeStagingRepo) MarkApproved(_ context.Context, id string) (*domain.StagedResultSet, error) {
	staged, ok := f.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	if staged.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	staged.Approved = true
	f.sets[id] = staged
	return &staged, nil
}

func sampleStagedSet() *domain.StagedResultSet {
	confidence := 0.92
	return &domain.StagedResultSet{
		ID: "staged-1",
		Result: domain.ExtractionResult{
			Success: true,
			Records: []domain.CanonicalPropertyRecord{
				{
					Title:     "Furnished office in Indiranagar",
					Location:  "Indiranagar, Bangalore",
					SourceURL: "https://www.officemarket.in/listing/123",
					Provenance: domain.ExtractionProvenance{
						ExtractedBy: domain.ExtractedByAI,
						Confidence:  &confidence,
					},
				},
			},
			Metadata: domain.ExtractionMetadata{
				URL:        "https://www.officemarket.in/listing/123",
				TotalFound: 1,
			},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(extraction *fakeExtraction, approval *fakeApproval, staging *fakeStagingRepo) *chi.Mux {
	h := NewExtractionHandler(extraction, approval, staging)

	r := chi.NewRouter()
	r.Post("/api/v1/extract", h.ExtractFromURL)
	r.Post("/api/v1/extract/search", h.ExtractFromSearch)
	r.Get("/api/v1/staging", h.ListStaged)
	r.Get("/api/v1/staging/{stagingID}", h.GetStaged)
	r.Post("/api/v1/staging/{stagingID}/approve", h.Approve)
	return r
}

func TestExtractFromURLReturnsStagedDetails(t *testing.T) {
	staged := sampleStagedSet()
	router := newTestRouter(&fakeExtraction{staged: staged}, &fakeApproval{}, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"url":"https://www.officemarket.in/listing/123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp StagedSetDetailsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "staged-1" {
		t.Errorf("expected staged set id 'staged-1', got %q", resp.ID)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(resp.Records))
	}
	if resp.Records[0].ConfidenceBand != domain.ConfidenceBandHigh {
		t.Errorf("expected confidence band %q, got %q", domain.ConfidenceBandHigh, resp.Records[0].ConfidenceBand)
	}
}

func TestExtractFromURLRequiresURL(t *testing.T) {
	router := newTestRouter(&fakeExtraction{}, &fakeApproval{}, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"url":"   "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestExtractFromSearchMapsPollingTimeout(t *testing.T) {
	extraction := &fakeExtraction{err: &domain.PollingTimeoutError{JobID: "job-1", Attempts: 20}}
	router := newTestRouter(extraction, &fakeApproval{}, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract/search", strings.NewReader(`{"params":{"location":"bangalore"},"multiPage":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", rec.Code)
	}
}

func TestGetStagedUnknownIDReturnsNotFound(t *testing.T) {
	router := newTestRouter(&fakeExtraction{}, &fakeApproval{}, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/staging/no-such-set", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestApproveForwardsReviewerEdits(t *testing.T) {
	approval := &fakeApproval{result: &domain.BulkImportResult{Imported: 1}}
	router := newTestRouter(&fakeExtraction{}, approval, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	body := `{"records":[{"title":"Edited title","location":"HSR Layout, Bangalore"}],"skipValidation":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staging/staged-1/approve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if approval.lastStagingID != "staged-1" {
		t.Errorf("expected staging id 'staged-1', got %q", approval.lastStagingID)
	}
	if len(approval.lastReq.Records) != 1 || approval.lastReq.Records[0].Title != "Edited title" {
		t.Errorf("reviewer-edited records were not forwarded: %+v", approval.lastReq.Records)
	}
	if !approval.lastReq.SkipValidation {
		t.Error("expected SkipValidation to be forwarded")
	}
}

func TestApproveSecondCallReturnsConflict(t *testing.T) {
	approval := &fakeApproval{err: domain.ErrAlreadyApproved}
	router := newTestRouter(&fakeExtraction{}, approval, &fakeStagingRepo{sets: map[string]domain.StagedResultSet{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/staging/staged-1/approve", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestListStagedReturnsSummaries(t *testing.T) {
	staged := sampleStagedSet()
	repo := &fakeStagingRepo{sets: map[string]domain.StagedResultSet{staged.ID: *staged}}
	router := newTestRouter(&fakeExtraction{}, &fakeApproval{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/staging", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var summaries []StagedSetSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Records != 1 {
		t.Errorf("expected 1 record in summary, got %d", summaries[0].Records)
	}
	if summaries[0].SourceURL != "https://www.officemarket.in/listing/123" {
		t.Errorf("unexpected source url: %q", summaries[0].SourceURL)
	}
}
