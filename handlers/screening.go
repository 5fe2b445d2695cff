// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/dyscover/middleware"
	"github.com/danielhkuo/dyscover/models"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/subtests"
)

// ScreeningHandler serves the stateless sub-test helpers: question banks,
// reading passages and transcript scoring.
type ScreeningHandler struct{}

func NewScreeningHandler() *ScreeningHandler {
	return &ScreeningHandler{}
}

// GetQuestionnaire handles GET /api/questionnaire/{group}
func (h *ScreeningHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	group, err := risk.ParseAgeGroup(r.PathValue("group"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := subtests.QuestionnaireFor(group)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// ScoreQuestionnaire handles POST /api/questionnaire/score
func (h *ScreeningHandler) ScoreQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreQuestionnaireRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	group, err := requestGroup(req.Group, req.Age)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	for i, a := range req.Answers {
		switch a {
		case subtests.AnswerYes, subtests.AnswerSometimes, subtests.AnswerNo:
		default:
			middleware.ErrorResponse(w, http.StatusBadRequest,
				"answer "+strconv.Itoa(i+1)+" must be Yes, Sometimes or No")
			return
		}
	}

	score, err := subtests.ScoreQuestionnaire(group, req.Answers)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, score)
}

// requestGroup resolves the bracket from an explicit group or an age.
func requestGroup(group string, age int) (risk.AgeGroup, error) {
	if group != "" {
		return risk.ParseAgeGroup(group)
	}
	if age == 0 {
		return "", errors.New("group or age is required")
	}
	return risk.AgeGroupFor(age)
}

// GetPassage handles GET /api/reading/passage?age=&index=
func (h *ScreeningHandler) GetPassage(w http.ResponseWriter, r *http.Request) {
	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "age must be an integer")
		return
	}
	group, err := risk.AgeGroupFor(age)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	index := 0
	if v := r.URL.Query().Get("index"); v != "" {
		index, err = strconv.Atoi(v)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "index must be an integer")
			return
		}
	}

	p, err := subtests.PassageFor(group, index)
	if errors.Is(err, subtests.ErrNoPassages) {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// EvaluateReading handles POST /api/reading/evaluate
func (h *ScreeningHandler) EvaluateReading(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateReadingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DurationSeconds < 0 || math.IsNaN(req.DurationSeconds) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_seconds must not be negative")
		return
	}

	passage := req.Passage
	if strings.TrimSpace(passage) == "" {
		if req.PassageIndex == nil || req.Age == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "passage or age and passage_index are required")
			return
		}
		group, err := risk.AgeGroupFor(req.Age)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		p, err := subtests.PassageFor(group, *req.PassageIndex)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		passage = p.Text
	}

	duration := time.Duration(req.DurationSeconds * float64(time.Second))
	middleware.JSONResponse(w, http.StatusOK, subtests.EvaluateReading(passage, req.Transcript, duration))
}

// CheckPronunciation handles POST /api/pronunciation/check
func (h *ScreeningHandler) CheckPronunciation(w http.ResponseWriter, r *http.Request) {
	var req models.CheckPronunciationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Target) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "target is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PronunciationResponse{
		Success:    true,
		Score:      subtests.CheckPronunciation(req.Target, req.Transcript),
		Target:     req.Target,
		Transcript: req.Transcript,
	})
}
