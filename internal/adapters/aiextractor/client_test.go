package aiextractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestExtractPropertiesCarriesRecordAnnotations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"type": "properties",
			"data": [{
				"title": "Office space in Koramangala",
				"location": "Koramangala, Bangalore",
				"confidence": 0.9,
				"warnings": ["price ambiguous"],
				"fieldsExtracted": ["title", "location"],
				"fieldsMissing": ["price"]
			}],
			"meta": {"model": "extract-large-v2", "tokensUsed": 512}
		}`))
	})

	outcome, err := client.Extract(context.Background(), domain.RawScrapePayload{Markdown: "# Office"}, "https://www.officemarket.in/listing/42", nil)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	props, ok := outcome.(domain.ExtractedProperties)
	if !ok {
		t.Fatalf("expected ExtractedProperties outcome, got %T", outcome)
	}
	if len(props.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(props.Records))
	}

	record := props.Records[0]
	if record.Provenance.ExtractedBy != domain.ExtractedByAI {
		t.Errorf("expected provenance %q, got %q", domain.ExtractedByAI, record.Provenance.ExtractedBy)
	}
	if record.Provenance.Confidence == nil || *record.Provenance.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", record.Provenance.Confidence)
	}
	if !reflect.DeepEqual(record.Provenance.FieldsExtracted, []string{"title", "location"}) {
		t.Errorf("fieldsExtracted not carried into provenance: %v", record.Provenance.FieldsExtracted)
	}
	if !reflect.DeepEqual(record.Provenance.FieldsMissing, []string{"price"}) {
		t.Errorf("fieldsMissing not carried into provenance: %v", record.Provenance.FieldsMissing)
	}
	if !reflect.DeepEqual(record.Provenance.Warnings, []string{"price ambiguous"}) {
		t.Errorf("per-record warnings not carried into provenance: %v", record.Provenance.Warnings)
	}
	if record.SourceURL != "https://www.officemarket.in/listing/42" {
		t.Errorf("expected source URL fallback, got %q", record.SourceURL)
	}
	if props.Meta.Model != "extract-large-v2" {
		t.Errorf("unexpected meta model: %q", props.Meta.Model)
	}
}

func TestExtractUISpecVariant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"type": "uiSpec",
			"data": {"layout": "grid", "columns": 3},
			"meta": {"model": "extract-large-v2"}
		}`))
	})

	outcome, err := client.Extract(context.Background(), domain.RawScrapePayload{HTML: "<html></html>"}, "https://www.officemarket.in/search", nil)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	spec, ok := outcome.(domain.UISpecification)
	if !ok {
		t.Fatalf("expected UISpecification outcome, got %T", outcome)
	}
	if spec.Spec["layout"] != "grid" {
		t.Errorf("expected layout 'grid', got %v", spec.Spec["layout"])
	}
}

func TestExtractUnknownOutcomeTypeFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "type": "summary", "data": {}}`))
	})

	if _, err := client.Extract(context.Background(), domain.RawScrapePayload{Markdown: "x"}, "https://www.officemarket.in/listing/1", nil); err == nil {
		t.Fatal("expected error for unknown outcome type, got nil")
	}
}
