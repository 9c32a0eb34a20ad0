package rest

import (
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ExtractRequest - запрос на извлечение по прямому URL.
type ExtractRequest struct {
	URL string `json:"url"`
}

// ExtractSearchRequest - запрос на извлечение по параметрам поиска.
type ExtractSearchRequest struct {
	Params    domain.SearchParameters `json:"params"`
	MultiPage bool                    `json:"multiPage,omitempty"`
}

// ApproveRequest - тело запроса на одобрение staged-набора.
// Records позволяет ревьюеру прислать отредактированную версию записей.
type ApproveRequest struct {
	Records           []domain.CanonicalPropertyRecord `json:"records,omitempty"`
	SkipValidation    bool                             `json:"skipValidation,omitempty"`
	OverwriteExisting bool                             `json:"overwriteExisting,omitempty"`
}

// SavePresetRequest - запрос на сохранение поиска.
type SavePresetRequest struct {
	Name   string                  `json:"name"`
	Params domain.SearchParameters `json:"params"`
}

// BuildURLRequest / ParseURLRequest - конвертация параметров поиска в URL и обратно.
type BuildURLRequest struct {
	Params domain.SearchParameters `json:"params"`
}

type BuildURLResponse struct {
	URL string `json:"url"`
}

type ParseURLRequest struct {
	URL string `json:"url"`
}

type ParseURLResponse struct {
	Params domain.SearchParameters `json:"params"`
}

// StagedSetSummaryResponse - строка списка для review-интерфейса.
type StagedSetSummaryResponse struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"sourceUrl"`
	Records    int       `json:"records"`
	WithIssues int       `json:"withIssues"`
	HasUISpec  bool      `json:"hasUiSpec"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// StagedRecordResponse - каноническая запись плюс вычисляемая полоса
// уверенности для отображения.
type StagedRecordResponse struct {
	domain.CanonicalPropertyRecord
	ConfidenceBand string `json:"confidenceBand,omitempty"`
}

// StagedSetDetailsResponse - полный staged-набор для ревьюера.
type StagedSetDetailsResponse struct {
	ID         string                    `json:"id"`
	Records    []StagedRecordResponse    `json:"records"`
	RawPayload []domain.RawScrapePayload `json:"rawPayload,omitempty"`
	UISpec     map[string]interface{}    `json:"uiSpec,omitempty"`
	Metadata   domain.ExtractionMetadata `json:"metadata"`
	Approved   bool                      `json:"approved"`
	CreatedAt  time.Time                 `json:"createdAt"`
	ApprovedAt *time.Time                `json:"approvedAt,omitempty"`
}

func toStagedSummary(staged domain.StagedResultSet) StagedSetSummaryResponse {
	withIssues := 0
	for _, record := range staged.Result.Records {
		if len(record.ValidationErrors) > 0 {
			withIssues++
		}
	}
	return StagedSetSummaryResponse{
		ID:         staged.ID,
		SourceURL:  staged.Result.Metadata.URL,
		Records:    len(staged.Result.Records),
		WithIssues: withIssues,
		HasUISpec:  staged.Result.UISpec != nil,
		Approved:   staged.Approved,
		CreatedAt:  staged.CreatedAt,
	}
}

func toStagedDetails(staged domain.StagedResultSet) StagedSetDetailsResponse {
	records := make([]StagedRecordResponse, len(staged.Result.Records))
	for i, record := range staged.Result.Records {
		resp := StagedRecordResponse{CanonicalPropertyRecord: record}
		if record.Provenance.Confidence != nil {
			resp.ConfidenceBand = domain.ConfidenceBand(*record.Provenance.Confidence)
		}
		records[i] = resp
	}
	return StagedSetDetailsResponse{
		ID:         staged.ID,
		Records:    records,
		RawPayload: staged.Result.RawPayloads,
		UISpec:     staged.Result.UISpec,
		Metadata:   staged.Result.Metadata,
		Approved:   staged.Approved,
		CreatedAt:  staged.CreatedAt,
		ApprovedAt: staged.ApprovedAt,
	}
}
