// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/dyscover/models"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/testutil"
)

// TestConcurrentResultSaves verifies that sub-tests saved at the same time
// for one assessment all land and none overwrite each other
func TestConcurrentResultSaves(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)
	id, accessKey := testutil.CreateTestAssessment(t, db, cfg, 4)

	tests := []string{"questionnaire", "pretest", "phoneme", "nonsense"}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for _, testType := range tests {
		wg.Add(1)
		go func(testType string) {
			defer wg.Done()

			body := map[string]interface{}{
				"type":    testType,
				"payload": map[string]int{"score": 3, "total": 5},
			}
			req := assessmentRequest("POST", "/api/assessments/"+id+"/results", id, accessKey, body)
			w := httptest.NewRecorder()

			handler.SaveResult(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(testType)
	}

	wg.Wait()

	if int(successCount.Load()) != len(tests) {
		t.Errorf("Expected %d successful saves, got %d", len(tests), successCount.Load())
	}

	results := getResults(t, handler, id, accessKey)
	if len(results) != len(tests) {
		t.Errorf("Expected %d stored results, got %d", len(tests), len(results))
	}
}

// TestConcurrentOverwrites verifies that racing saves of the same sub-test
// leave exactly one result behind
func TestConcurrentOverwrites(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)
	id, accessKey := testutil.CreateTestAssessment(t, db, cfg, 7)

	numWriters := 10
	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < numWriters; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()

			body := map[string]interface{}{
				"type":    "phoneme",
				"payload": map[string]int{"score": score, "total": 10},
			}
			req := assessmentRequest("POST", "/api/assessments/"+id+"/results", id, accessKey, body)
			w := httptest.NewRecorder()

			handler.SaveResult(w, req)

			if w.Code != http.StatusOK {
				failures.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected all saves to succeed, %d failed", failures.Load())
	}

	results := getResults(t, handler, id, accessKey)
	if len(results) != 1 {
		t.Errorf("Expected a single phoneme result, got %d", len(results))
	}
}

// TestConcurrentCompletion verifies that racing completions agree on one
// completion time
func TestConcurrentCompletion(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)
	id, accessKey := testutil.CreateTestAssessment(t, db, cfg, 9)

	numRequests := 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	completions := make([]models.CompleteAssessmentResponse, 0, numRequests)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := assessmentRequest("POST", "/api/assessments/"+id+"/complete", id, accessKey, nil)
			w := httptest.NewRecorder()

			handler.CompleteAssessment(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected 200, got %d", w.Code)
				return
			}
			var resp models.CompleteAssessmentResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Failed to decode response: %v", err)
				return
			}

			mu.Lock()
			completions = append(completions, resp)
			mu.Unlock()
		}()
	}

	wg.Wait()

	req := assessmentRequest("GET", "/api/assessments/"+id, id, accessKey, nil)
	w := httptest.NewRecorder()
	handler.GetAssessment(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.AssessmentResponse
	testutil.AssertJSON(t, w, &view)
	if view.CompletedAt == nil {
		t.Fatal("Expected assessment to be completed")
	}
	for _, c := range completions {
		if !c.CompletedAt.Equal(*view.CompletedAt) {
			t.Errorf("Response completion %v differs from stored %v", c.CompletedAt, *view.CompletedAt)
		}
	}
}

// TestParallelAssessments verifies that independent assessments scored in
// parallel get their own results
func TestParallelAssessments(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)

	numAssessments := 5
	ids := make([]string, numAssessments)
	keys := make([]string, numAssessments)
	for i := range ids {
		ids[i], keys[i] = testutil.CreateTestAssessment(t, db, cfg, 7)
		testutil.SaveTestResult(t, db, ids[i], risk.TestPhoneme, `{"score":2,"total":10}`)
	}

	var wg sync.WaitGroup
	levels := make([]risk.Level, numAssessments)

	for i := range ids {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := assessmentRequest("GET", "/api/assessments/"+ids[idx]+"/risk", ids[idx], keys[idx], nil)
			w := httptest.NewRecorder()
			handler.GetRisk(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Assessment %d: expected 200, got %d", idx, w.Code)
				return
			}
			var resp models.RiskResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Assessment %d: failed to decode response: %v", idx, err)
				return
			}
			levels[idx] = resp.RiskLevel
		}(i)
	}

	wg.Wait()

	for i, level := range levels {
		// One high-risk indicator (phoneme 20%) gives Medium Risk
		if level != risk.LevelMedium {
			t.Errorf("Assessment %d: expected Medium Risk, got %s", i, level)
		}
	}
}
