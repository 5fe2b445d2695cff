// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/dyscover/models"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/subtests"
	"github.com/danielhkuo/dyscover/testutil"
)

func answers(n int, a subtests.Answer) []subtests.Answer {
	out := make([]subtests.Answer, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestGetQuestionnaire(t *testing.T) {
	handler := NewScreeningHandler()

	tests := []struct {
		group         string
		expectedCode  int
		expectedCount int
	}{
		{"3-5", http.StatusOK, 18},
		{"6-8", http.StatusOK, 20},
		{"9-12", http.StatusOK, 20},
		{"13-15", http.StatusBadRequest, 0},
		{"", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run("group "+tt.group, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/questionnaire/"+tt.group, nil)
			req.SetPathValue("group", tt.group)
			w := httptest.NewRecorder()

			handler.GetQuestionnaire(w, req)

			testutil.AssertStatus(t, w, tt.expectedCode)

			if tt.expectedCode == http.StatusOK {
				var q subtests.Questionnaire
				testutil.AssertJSON(t, w, &q)
				if len(q.Questions) != tt.expectedCount {
					t.Errorf("Expected %d questions, got %d", tt.expectedCount, len(q.Questions))
				}
				if q.MaxPoints != 2*tt.expectedCount {
					t.Errorf("Expected max points %d, got %d", 2*tt.expectedCount, q.MaxPoints)
				}
			}
		})
	}
}

func TestScoreQuestionnaireHandler(t *testing.T) {
	handler := NewScreeningHandler()

	tests := []struct {
		name          string
		body          interface{}
		expectedCode  int
		expectedScore int
		expectedLevel risk.Level
	}{
		{
			name:          "all no by group",
			body:          models.ScoreQuestionnaireRequest{Group: "6-8", Answers: answers(20, subtests.AnswerNo)},
			expectedCode:  http.StatusOK,
			expectedScore: 40,
			expectedLevel: risk.LevelLow,
		},
		{
			name:          "all yes by age",
			body:          models.ScoreQuestionnaireRequest{Age: 4, Answers: answers(18, subtests.AnswerYes)},
			expectedCode:  http.StatusOK,
			expectedScore: 0,
			expectedLevel: risk.LevelHigh,
		},
		{
			name:          "all sometimes",
			body:          models.ScoreQuestionnaireRequest{Group: "9-12", Answers: answers(20, subtests.AnswerSometimes)},
			expectedCode:  http.StatusOK,
			expectedScore: 20,
			expectedLevel: risk.LevelMedium,
		},
		{
			name:         "wrong answer count",
			body:         models.ScoreQuestionnaireRequest{Group: "6-8", Answers: answers(3, subtests.AnswerNo)},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown answer",
			body:         models.ScoreQuestionnaireRequest{Group: "3-5", Answers: answers(18, "Maybe")},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "no group or age",
			body:         models.ScoreQuestionnaireRequest{Answers: answers(18, subtests.AnswerNo)},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "age out of range",
			body:         models.ScoreQuestionnaireRequest{Age: 15, Answers: answers(20, subtests.AnswerNo)},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/questionnaire/score", tt.body, nil)
			w := httptest.NewRecorder()

			handler.ScoreQuestionnaire(w, req)

			testutil.AssertStatus(t, w, tt.expectedCode)

			if tt.expectedCode == http.StatusOK {
				var score subtests.QuestionnaireScore
				testutil.AssertJSON(t, w, &score)
				if score.Score != tt.expectedScore {
					t.Errorf("Expected score %d, got %d", tt.expectedScore, score.Score)
				}
				if score.Level != tt.expectedLevel {
					t.Errorf("Expected level %s, got %s", tt.expectedLevel, score.Level)
				}
			}
		})
	}
}

func TestGetPassage(t *testing.T) {
	handler := NewScreeningHandler()

	tests := []struct {
		name          string
		query         string
		expectedCode  int
		expectedIndex int
	}{
		{"first passage", "?age=7", http.StatusOK, 0},
		{"explicit index", "?age=10&index=2", http.StatusOK, 2},
		{"index wraps", "?age=7&index=6", http.StatusOK, 1},
		{"negative index wraps", "?age=7&index=-1", http.StatusOK, 4},
		{"no passages for early years", "?age=4", http.StatusNotFound, 0},
		{"missing age", "", http.StatusBadRequest, 0},
		{"age out of range", "?age=20", http.StatusBadRequest, 0},
		{"bad index", "?age=7&index=x", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/reading/passage"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.GetPassage(w, req)

			testutil.AssertStatus(t, w, tt.expectedCode)

			if tt.expectedCode == http.StatusOK {
				var p subtests.Passage
				testutil.AssertJSON(t, w, &p)
				if p.Index != tt.expectedIndex {
					t.Errorf("Expected index %d, got %d", tt.expectedIndex, p.Index)
				}
				if p.Text == "" {
					t.Error("Expected passage text")
				}
			}
		})
	}
}

func TestEvaluateReadingHandler(t *testing.T) {
	handler := NewScreeningHandler()

	t.Run("explicit passage", func(t *testing.T) {
		body := models.EvaluateReadingRequest{
			Passage:         "I see a red car.",
			Transcript:      "I see a blue car",
			DurationSeconds: 6,
		}
		req := testutil.MakeRequest("POST", "/api/reading/evaluate", body, nil)
		w := httptest.NewRecorder()

		handler.EvaluateReading(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var ev subtests.ReadingEvaluation
		testutil.AssertJSON(t, w, &ev)
		if ev.CorrectWords != 4 || ev.ErrorCount != 1 {
			t.Errorf("Expected 4 correct and 1 error, got %d and %d", ev.CorrectWords, ev.ErrorCount)
		}
		if ev.WPM != 50 {
			t.Errorf("Expected 50 wpm, got %v", ev.WPM)
		}
	})

	t.Run("passage by index", func(t *testing.T) {
		index := 1
		body := models.EvaluateReadingRequest{
			Age:             7,
			PassageIndex:    &index,
			Transcript:      "I see a red car. The car is small and fast.",
			DurationSeconds: 30,
		}
		req := testutil.MakeRequest("POST", "/api/reading/evaluate", body, nil)
		w := httptest.NewRecorder()

		handler.EvaluateReading(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var ev subtests.ReadingEvaluation
		testutil.AssertJSON(t, w, &ev)
		if ev.ErrorCount != 0 || ev.CorrectWords != 11 {
			t.Errorf("Expected a perfect read of 11 words, got %+v", ev)
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []models.EvaluateReadingRequest{
			{Transcript: "hello", DurationSeconds: 5},
			{Passage: "hello", Transcript: "hello", DurationSeconds: -1},
			{Age: 4, PassageIndex: new(int), Transcript: "hello", DurationSeconds: 5},
		}
		for i, body := range cases {
			req := testutil.MakeRequest("POST", "/api/reading/evaluate", body, nil)
			w := httptest.NewRecorder()

			handler.EvaluateReading(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("case %d: expected 400, got %d", i, w.Code)
			}
		}
	})
}

func TestCheckPronunciationHandler(t *testing.T) {
	handler := NewScreeningHandler()

	tests := []struct {
		name          string
		body          interface{}
		expectedCode  int
		expectedScore int
	}{
		{"exact match", models.CheckPronunciationRequest{Target: "cat", Transcript: "Cat"}, http.StatusOK, 1},
		{"word in sentence", models.CheckPronunciationRequest{Target: "ship", Transcript: "I said ship!"}, http.StatusOK, 1},
		{"no match", models.CheckPronunciationRequest{Target: "ship", Transcript: "sip"}, http.StatusOK, 0},
		{"empty transcript", models.CheckPronunciationRequest{Target: "ship"}, http.StatusOK, 0},
		{"missing target", models.CheckPronunciationRequest{Transcript: "ship"}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/pronunciation/check", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CheckPronunciation(w, req)

			testutil.AssertStatus(t, w, tt.expectedCode)

			if tt.expectedCode == http.StatusOK {
				var resp models.PronunciationResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Score != tt.expectedScore {
					t.Errorf("Expected score %d, got %d", tt.expectedScore, resp.Score)
				}
			}
		})
	}
}
