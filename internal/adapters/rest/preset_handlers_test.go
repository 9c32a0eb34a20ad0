package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type fakePresets struct {
	presets map[string]domain.SearchPreset

	lastName string
}

func (f *fakePresets) Save(_ context.Context, name string, params domain.SearchParameters) (*domain.SearchPreset, error) {
	preset := domain.SearchPreset{ID: "preset-1", Name: name, Params: params}
	f.presets[name] = preset
	return &preset, nil
}

func (f *fakePresets) List(_ context.Context) ([]domain.SearchPreset, error) {
	out := make([]domain.SearchPreset, 0, len(f.presets))
	for _, preset := range f.presets {
		out = append(out, preset)
	}
	return out, nil
}

func (f *fakePresets) GetByName(_ context.Context, name string) (*domain.SearchPreset, error) {
	f.lastName = name
	preset, ok := f.presets[name]
	if !ok {
		return nil, domain.ErrPresetNotFound
	}
	return &preset, nil
}

func (f *fakePresets) Delete(_ context.Context, id string) error {
	for name, preset := range f.presets {
		if preset.ID == id {
			delete(f.presets, name)
			return nil
		}
	}
	return domain.ErrPresetNotFound
}

func newPresetRouter(presets *fakePresets) *chi.Mux {
	h := NewPresetHandler(presets)

	r := chi.NewRouter()
	r.Get("/api/v1/presets", h.List)
	r.Post("/api/v1/presets", h.Save)
	r.Get("/api/v1/presets/by-name/{presetName}", h.GetByName)
	r.Delete("/api/v1/presets/{presetID}", h.Delete)
	return r
}

func TestGetPresetByNameReturnsPreset(t *testing.T) {
	presets := &fakePresets{presets: map[string]domain.SearchPreset{
		"bangalore-offices": {ID: "preset-1", Name: "bangalore-offices", Params: domain.SearchParameters{Location: "bangalore"}},
	}}
	router := newPresetRouter(presets)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets/by-name/bangalore-offices", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if presets.lastName != "bangalore-offices" {
		t.Errorf("expected lookup by 'bangalore-offices', got %q", presets.lastName)
	}

	var preset domain.SearchPreset
	if err := json.Unmarshal(rec.Body.Bytes(), &preset); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if preset.ID != "preset-1" || preset.Params.Location != "bangalore" {
		t.Errorf("unexpected preset in response: %+v", preset)
	}
}

func TestGetPresetByNameUnknownReturnsNotFound(t *testing.T) {
	router := newPresetRouter(&fakePresets{presets: map[string]domain.SearchPreset{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets/by-name/no-such-preset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
