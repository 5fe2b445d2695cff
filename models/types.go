package models

import (
	"encoding/json"
	"time"

	"github.com/danielhkuo/dyscover/recommend"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/subtests"
)

// Header names
const (
	HeaderAccessKey = "X-Access-Key"
	HeaderExportKey = "X-Export-Key"
	HeaderRequestID = "X-Request-ID"
)

// Request types

type UserInput struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Age   int    `json:"age"`
	Sex   string `json:"sex"`
}

type CreateAssessmentRequest struct {
	User UserInput `json:"user"`
}

// Payload is the raw sub-test result; savedAt is stamped by the server.
type SaveResultRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ScoreQuestionnaireRequest struct {
	Group   string            `json:"group"`
	Age     int               `json:"age"`
	Answers []subtests.Answer `json:"answers"`
}

// Either Passage or Age+PassageIndex identifies the text that was read.
type EvaluateReadingRequest struct {
	Passage         string  `json:"passage"`
	Age             int     `json:"age"`
	PassageIndex    *int    `json:"passage_index"`
	Transcript      string  `json:"transcript"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type CheckPronunciationRequest struct {
	Target     string `json:"target"`
	Transcript string `json:"transcript"`
}

// Response types

type CreateAssessmentResponse struct {
	AssessmentID string `json:"assessment_id"`
	AccessKey    string `json:"access_key"`
	AgeGroup     string `json:"age_group"`
}

type AssessmentResponse struct {
	ID          string                     `json:"id"`
	User        UserInput                  `json:"user"`
	AgeGroup    string                     `json:"age_group"`
	StartedAt   time.Time                  `json:"started_at"`
	CompletedAt *time.Time                 `json:"completed_at,omitempty"`
	Results     map[string]json.RawMessage `json:"results"`
}

type SaveResultResponse struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Result  json.RawMessage `json:"result"`
}

type CompleteAssessmentResponse struct {
	Success     bool      `json:"success"`
	CompletedAt time.Time `json:"completed_at"`
}

type RiskResponse struct {
	*risk.Assessment
	RecommendationSource recommend.Source `json:"recommendationSource"`
	RecommendationModel  string           `json:"recommendationModel,omitempty"`
	Areas                *recommend.Areas `json:"areas,omitempty"`
}

type PronunciationResponse struct {
	Success    bool   `json:"success"`
	Score      int    `json:"score"`
	Target     string `json:"target"`
	Transcript string `json:"transcript"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
