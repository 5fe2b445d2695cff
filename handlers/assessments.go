// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dyscover/auth"
	"github.com/danielhkuo/dyscover/cliparse"
	"github.com/danielhkuo/dyscover/middleware"
	"github.com/danielhkuo/dyscover/models"
	"github.com/danielhkuo/dyscover/recommend"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/store"
	"github.com/danielhkuo/dyscover/subtests"
)

type AssessmentHandler struct {
	store       *store.Store
	cfg         cliparse.Config
	profile     *risk.Profile
	recommender *recommend.Service
}

// NewAssessmentHandler creates the assessment handler. A nil profile uses
// the default scoring constants; a nil recommender always falls back to
// the fixed recommendations.
func NewAssessmentHandler(st *store.Store, cfg cliparse.Config, profile *risk.Profile, recommender *recommend.Service) *AssessmentHandler {
	if profile == nil {
		profile = risk.DefaultProfile()
	}
	return &AssessmentHandler{store: st, cfg: cfg, profile: profile, recommender: recommender}
}

// CreateAssessment handles POST /api/assessments
func (h *AssessmentHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssessmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	group, err := risk.AgeGroupFor(req.User.Age)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "age must be between 3 and 12")
		return
	}

	assessmentID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate assessment ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create assessment")
		return
	}

	err = h.store.Create(r.Context(), store.Assessment{
		ID:        assessmentID,
		FirstName: strings.TrimSpace(req.User.First),
		LastName:  strings.TrimSpace(req.User.Last),
		Age:       req.User.Age,
		Sex:       strings.TrimSpace(req.User.Sex),
		AgeGroup:  string(group),
		StartedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to insert assessment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create assessment")
		return
	}

	slog.Info("assessment created", "assessment_id", assessmentID, "age_group", group)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAssessmentResponse{
		AssessmentID: assessmentID,
		AccessKey:    auth.GenerateAccessKey(assessmentID, h.cfg.AccessKeySalt),
		AgeGroup:     string(group),
	})
}

// authorize checks the access key for the assessment in the path and
// returns its ID. It writes the error response itself.
func (h *AssessmentHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	assessmentID := r.PathValue("id")
	if assessmentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "assessment_id is required")
		return "", false
	}

	accessKey := r.Header.Get(models.HeaderAccessKey)
	if err := auth.ValidateAccessKey(assessmentID, accessKey, h.cfg.AccessKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid access key")
		return "", false
	}
	return assessmentID, true
}

// storeError maps a store failure onto a response.
func storeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Assessment not found")
	case errors.Is(err, store.ErrInvalidPayload):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// load fetches an assessment with its collected results.
func (h *AssessmentHandler) load(w http.ResponseWriter, r *http.Request, assessmentID string) (*store.Assessment, risk.Results, bool) {
	a, err := h.store.Get(r.Context(), assessmentID)
	if err != nil {
		storeError(w, err, "query assessment")
		return nil, risk.Results{}, false
	}
	raw, err := h.store.Results(r.Context(), assessmentID)
	if err != nil {
		storeError(w, err, "query results")
		return nil, risk.Results{}, false
	}
	return a, risk.Collect(raw), true
}

// GetAssessment handles GET /api/assessments/{id}
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	a, err := h.store.Get(r.Context(), assessmentID)
	if err != nil {
		storeError(w, err, "query assessment")
		return
	}
	results, err := h.store.Results(r.Context(), assessmentID)
	if err != nil {
		storeError(w, err, "query results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AssessmentResponse{
		ID: a.ID,
		User: models.UserInput{
			First: a.FirstName,
			Last:  a.LastName,
			Age:   a.Age,
			Sex:   a.Sex,
		},
		AgeGroup:    a.AgeGroup,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
		Results:     results,
	})
}

// GetResults handles GET /api/assessments/{id}/results
func (h *AssessmentHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	results, err := h.store.Results(r.Context(), assessmentID)
	if err != nil {
		storeError(w, err, "query results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// SaveResult handles POST /api/assessments/{id}/results
func (h *AssessmentHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.SaveResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	test, err := risk.ParseTestID(req.Type)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Payload) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "payload is required")
		return
	}
	if err := subtests.ValidatePayload(test, req.Payload); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.store.UpsertResult(r.Context(), assessmentID, test, req.Payload, time.Now())
	if err != nil {
		storeError(w, err, "save result")
		return
	}

	slog.Info("result saved", "assessment_id", assessmentID, "test", test)

	middleware.JSONResponse(w, http.StatusOK, models.SaveResultResponse{
		Success: true,
		Type:    string(test),
		Result:  stored,
	})
}

// CompleteAssessment handles POST /api/assessments/{id}/complete
func (h *AssessmentHandler) CompleteAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	completedAt, err := h.store.Complete(r.Context(), assessmentID, time.Now())
	if err != nil {
		storeError(w, err, "complete assessment")
		return
	}

	slog.Info("assessment completed", "assessment_id", assessmentID)

	middleware.JSONResponse(w, http.StatusOK, models.CompleteAssessmentResponse{
		Success:     true,
		CompletedAt: completedAt,
	})
}

// GetRisk handles GET /api/assessments/{id}/risk
// With ?personalized=true the configured model is asked for
// recommendations; any failure keeps the fixed list.
func (h *AssessmentHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	personalized := false
	if v := r.URL.Query().Get("personalized"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "personalized must be a boolean")
			return
		}
		personalized = b
	}

	a, results, ok := h.load(w, r, assessmentID)
	if !ok {
		return
	}

	assessment, err := h.profile.Evaluate(results, a.Demographics())
	if err != nil {
		slog.Error("failed to evaluate risk", "assessment_id", assessmentID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to evaluate risk")
		return
	}

	resp := models.RiskResponse{
		Assessment:           assessment,
		RecommendationSource: recommend.SourceDefault,
	}
	if personalized {
		rec := h.recommender.Recommend(r.Context(), a.Demographics(), assessment, results)
		assessment.Recommendations = rec.Recommendations
		resp.RecommendationSource = rec.Source
		resp.RecommendationModel = rec.Model
		resp.Areas = &rec.Areas
	} else {
		areas := recommend.Analyze(results, assessment.Breakdown)
		resp.Areas = &areas
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetReport handles GET /api/assessments/{id}/report
func (h *AssessmentHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	a, results, ok := h.load(w, r, assessmentID)
	if !ok {
		return
	}

	assessment, err := h.profile.Evaluate(results, a.Demographics())
	if err != nil {
		slog.Error("failed to evaluate risk", "assessment_id", assessmentID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to evaluate risk")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(renderReport(a, assessment, time.Now())))
}

func renderReport(a *store.Assessment, ra *risk.Assessment, now time.Time) string {
	var b strings.Builder

	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "Dyslexia screening report\n\n")
	fmt.Fprintf(&b, "Child:      %s, age %d", name, a.Age)
	if a.Sex != "" {
		fmt.Fprintf(&b, ", %s", a.Sex)
	}
	fmt.Fprintf(&b, "\nAge group:  %s\n", a.AgeGroup)
	fmt.Fprintf(&b, "Started:    %s\n", humanize.RelTime(a.StartedAt, now, "ago", "from now"))
	if a.CompletedAt != nil {
		took := strings.TrimSpace(humanize.RelTime(a.StartedAt, *a.CompletedAt, "", ""))
		fmt.Fprintf(&b, "Completed:  %s (took %s)\n", humanize.RelTime(*a.CompletedAt, now, "ago", "from now"), took)
	} else {
		fmt.Fprintf(&b, "Completed:  not yet\n")
	}

	fmt.Fprintf(&b, "\nAssessment: %s\n", ra.AssessmentType)
	fmt.Fprintf(&b, "Risk level: %s (confidence %s)\n", ra.RiskLevel, ra.Confidence)
	fmt.Fprintf(&b, "Composite:  %.2f / 100\n", ra.CompositeScore)

	if len(ra.CompletedTests) > 0 {
		fmt.Fprintf(&b, "\nSub-test scores (0-100):\n")
		for _, id := range ra.CompletedTests {
			fmt.Fprintf(&b, "  %-14s %6.2f\n", id, ra.Breakdown[id])
		}
	}

	writeIndicators(&b, "High-risk indicators", ra.Indicators.High)
	writeIndicators(&b, "Medium-risk indicators", ra.Indicators.Medium)
	writeIndicators(&b, "Positive indicators", ra.Indicators.Low)

	fmt.Fprintf(&b, "\nRecommendations:\n")
	for i, rec := range ra.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}
	fmt.Fprintf(&b, "\nThis screening is not a diagnosis.\n")
	return b.String()
}

func writeIndicators(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}
