package contracts

import (
	"encoding/json"
	"testing"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

func TestValidateExtractionReportEvent(t *testing.T) {
	body, err := json.Marshal(domain.ExtractionReport{
		RunID:            "run-1",
		SourceURL:        "https://www.officemarket.in/listings/bangalore/office-space",
		RecordsExtracted: 4,
		CreditsUsed:      2.5,
	})
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	if err := ValidateEvent("ExtractionReportEvent", "1.0.0", body); err != nil {
		t.Fatalf("well-formed report must validate: %v", err)
	}
}

func TestValidateExtractionReportRejectsMissingFields(t *testing.T) {
	body := []byte(`{"run_id": "run-1"}`)
	if err := ValidateEvent("ExtractionReportEvent", "1.0.0", body); err == nil {
		t.Fatalf("report without source_url must fail validation")
	}
}

func TestValidateImportReportEvent(t *testing.T) {
	body, err := json.Marshal(domain.ImportReport{
		StagingID: "staged-1",
		SourceURL: "https://www.officemarket.in/listings/bangalore/office-space",
		Imported:  3,
		Failed:    1,
	})
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	if err := ValidateEvent("ImportReportEvent", "1.0.0", body); err != nil {
		t.Fatalf("well-formed import report must validate: %v", err)
	}
}

func TestValidateUnknownEventType(t *testing.T) {
	if err := ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`)); err == nil {
		t.Fatalf("unknown event type must be rejected")
	}
}

func TestValidateRejectsInvalidJSON(t *testing.T) {
	if err := ValidateEvent("ExtractionReportEvent", "1.0.0", []byte(`{not json`)); err == nil {
		t.Fatalf("invalid JSON must be rejected")
	}
}
