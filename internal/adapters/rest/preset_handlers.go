package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
	usecases_port "github.com/swami086/gentle-space-realty-sub007/internal/core/port/usecases"
)

// PresetHandler обслуживает сохраненные поиски.
type PresetHandler struct {
	presets usecases_port.ManagePresetsPort
}

func NewPresetHandler(presets usecases_port.ManagePresetsPort) *PresetHandler {
	return &PresetHandler{presets: presets}
}

// Save обрабатывает POST /api/v1/presets.
func (h *PresetHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "SavePreset",
	})

	var req SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	preset, err := h.presets.Save(r.Context(), req.Name, req.Params)
	if err != nil {
		logger.Error("Failed to save preset", err, port.Fields{"preset_name": req.Name})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, preset)
}

// List обрабатывает GET /api/v1/presets.
func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "ListPresets",
	})

	presets, err := h.presets.List(r.Context())
	if err != nil {
		logger.Error("Failed to list presets", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, presets)
}

// GetByName обрабатывает GET /api/v1/presets/by-name/{presetName}.
// Нужен review-интерфейсу: предупредить о перезаписи до сохранения.
func (h *PresetHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "GetPresetByName",
	})

	presetName := chi.URLParam(r, "presetName")

	preset, err := h.presets.GetByName(r.Context(), presetName)
	if err != nil {
		logger.Warn("Preset lookup by name failed", port.Fields{"preset_name": presetName})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, preset)
}

// Delete обрабатывает DELETE /api/v1/presets/{presetID}.
func (h *PresetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "DeletePreset",
	})

	presetID := chi.URLParam(r, "presetID")

	if err := h.presets.Delete(r.Context(), presetID); err != nil {
		logger.Error("Failed to delete preset", err, port.Fields{"preset_id": presetID})
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
