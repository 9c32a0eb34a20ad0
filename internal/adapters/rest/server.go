package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(
	httpPort string,
	extractionHandlers *ExtractionHandler,
	presetHandlers *PresetHandler,
	searchURLHandlers *SearchURLHandler,
	baseLogger port.LoggerPort,
) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		// AllowedOrigins - список доменов, с которых разрешены запросы
		AllowedOrigins: []string{"http://localhost:5173"},

		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},

		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},

		// AllowCredentials - разрешает отправку cookies и Authorization хедера
		AllowCredentials: true,
	}))
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", extractionHandlers.ExtractFromURL)
		r.Post("/extract/search", extractionHandlers.ExtractFromSearch)

		// роуты review-цикла
		r.Get("/staging", extractionHandlers.ListStaged)
		r.Get("/staging/{stagingID}", extractionHandlers.GetStaged)
		r.Post("/staging/{stagingID}/approve", extractionHandlers.Approve)

		r.Get("/presets", presetHandlers.List)
		r.Post("/presets", presetHandlers.Save)
		r.Get("/presets/by-name/{presetName}", presetHandlers.GetByName)
		r.Delete("/presets/{presetID}", presetHandlers.Delete)

		r.Post("/search-url/build", searchURLHandlers.Build)
		r.Post("/search-url/parse", searchURLHandlers.Parse)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + httpPort,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
