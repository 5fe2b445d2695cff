// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dyscover/cliparse"
	"github.com/danielhkuo/dyscover/export"
	"github.com/danielhkuo/dyscover/handlers"
	"github.com/danielhkuo/dyscover/middleware"
	"github.com/danielhkuo/dyscover/recommend"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config, profile *risk.Profile, recommender *recommend.Service) *http.ServeMux {
	mux := http.NewServeMux()
	logged := middleware.Logging(cfg.AccessKeySalt)

	// Initialize handlers
	assessmentHandler := handlers.NewAssessmentHandler(st, cfg, profile, recommender)
	screeningHandler := handlers.NewScreeningHandler()
	exportHandler := handlers.NewExportHandler(export.NewExporter(st, profile), cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Assessment lifecycle (requires X-Access-Key except create)
	mux.HandleFunc("POST /api/assessments", logged(assessmentHandler.CreateAssessment))
	mux.HandleFunc("GET /api/assessments/{id}", logged(assessmentHandler.GetAssessment))
	mux.HandleFunc("GET /api/assessments/{id}/results", logged(assessmentHandler.GetResults))
	mux.HandleFunc("POST /api/assessments/{id}/results", logged(assessmentHandler.SaveResult))
	mux.HandleFunc("POST /api/assessments/{id}/complete", logged(assessmentHandler.CompleteAssessment))
	mux.HandleFunc("GET /api/assessments/{id}/risk", logged(assessmentHandler.GetRisk))
	mux.HandleFunc("GET /api/assessments/{id}/report", logged(assessmentHandler.GetReport))

	// Sub-test helpers (stateless)
	mux.HandleFunc("GET /api/questionnaire/{group}", logged(screeningHandler.GetQuestionnaire))
	mux.HandleFunc("POST /api/questionnaire/score", logged(screeningHandler.ScoreQuestionnaire))
	mux.HandleFunc("GET /api/reading/passage", logged(screeningHandler.GetPassage))
	mux.HandleFunc("POST /api/reading/evaluate", logged(screeningHandler.EvaluateReading))
	mux.HandleFunc("POST /api/pronunciation/check", logged(screeningHandler.CheckPronunciation))

	// Dataset export (requires X-Export-Key)
	mux.HandleFunc("GET /api/export", logged(exportHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dyscover API v1"))
	})

	return mux
}
