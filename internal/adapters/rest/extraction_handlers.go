package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
	usecases_port "github.com/swami086/gentle-space-realty-sub007/internal/core/port/usecases"
)

// ExtractionHandler обслуживает запуск пайплайна и review-цикл.
type ExtractionHandler struct {
	extraction usecases_port.RunExtractionPort
	approval   usecases_port.ApproveImportPort
	staging    port.StagingRepositoryPort
}

func NewExtractionHandler(
	extraction usecases_port.RunExtractionPort,
	approval usecases_port.ApproveImportPort,
	staging port.StagingRepositoryPort,
) *ExtractionHandler {
	return &ExtractionHandler{
		extraction: extraction,
		approval:   approval,
		staging:    staging,
	}
}

// ExtractFromURL обрабатывает POST /api/v1/extract.
func (h *ExtractionHandler) ExtractFromURL(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "ExtractFromURL",
	})

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'url' is required")
		return
	}

	staged, err := h.extraction.ExtractFromURL(r.Context(), req.URL)
	if err != nil {
		logger.Error("Extraction failed", err, port.Fields{"url": req.URL})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toStagedDetails(*staged))
}

// ExtractFromSearch обрабатывает POST /api/v1/extract/search.
func (h *ExtractionHandler) ExtractFromSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "ExtractFromSearch",
	})

	var req ExtractSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	staged, err := h.extraction.ExtractFromSearch(r.Context(), req.Params, req.MultiPage)
	if err != nil {
		logger.Error("Search extraction failed", err, port.Fields{"multi_page": req.MultiPage})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toStagedDetails(*staged))
}

// ListStaged обрабатывает GET /api/v1/staging.
func (h *ExtractionHandler) ListStaged(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "ListStaged",
	})

	sets, err := h.staging.List(r.Context())
	if err != nil {
		logger.Error("Failed to list staged sets", err, nil)
		WriteDomainError(w, err)
		return
	}

	summaries := make([]StagedSetSummaryResponse, len(sets))
	for i, staged := range sets {
		summaries[i] = toStagedSummary(staged)
	}

	RespondWithJSON(w, http.StatusOK, summaries)
}

// GetStaged обрабатывает GET /api/v1/staging/{stagingID}.
func (h *ExtractionHandler) GetStaged(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "GetStaged",
	})

	stagingID := chi.URLParam(r, "stagingID")

	staged, err := h.staging.Get(r.Context(), stagingID)
	if err != nil {
		logger.Warn("Staged set lookup failed", port.Fields{"staging_id": stagingID})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toStagedDetails(*staged))
}

// Approve обрабатывает POST /api/v1/staging/{stagingID}/approve.
func (h *ExtractionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "Approve",
	})

	stagingID := chi.URLParam(r, "stagingID")

	var req ApproveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.approval.Execute(r.Context(), stagingID, domain.BulkImportRequest{
		Records:           req.Records,
		SkipValidation:    req.SkipValidation,
		OverwriteExisting: req.OverwriteExisting,
	})
	if err != nil {
		logger.Error("Approve and import failed", err, port.Fields{"staging_id": stagingID})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}
