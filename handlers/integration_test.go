// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/dyscover/models"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/subtests"
	"github.com/danielhkuo/dyscover/testutil"
)

// TestFullScreeningWorkflow walks a 6-8 year old through the screening:
// create, questionnaire, phoneme, pattern, reading, complete, risk, report.
func TestFullScreeningWorkflow(t *testing.T) {
	assessments, _, _ := newAssessmentHandler(t, nil)
	screening := NewScreeningHandler()

	// Step 1: Create assessment
	req := testutil.MakeRequest("POST", "/api/assessments", models.CreateAssessmentRequest{
		User: models.UserInput{First: "Ada", Last: "Lee", Age: 7, Sex: "female"},
	}, nil)
	w := httptest.NewRecorder()
	assessments.CreateAssessment(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateAssessmentResponse
	testutil.AssertJSON(t, w, &created)
	id, key := created.AssessmentID, created.AccessKey

	save := func(testType string, payload interface{}) {
		t.Helper()
		body := map[string]interface{}{"type": testType, "payload": payload}
		req := assessmentRequest("POST", "/api/assessments/"+id+"/results", id, key, body)
		w := httptest.NewRecorder()
		assessments.SaveResult(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	// Step 2: Fetch and score the questionnaire
	req = httptest.NewRequest("GET", "/api/questionnaire/"+created.AgeGroup, nil)
	req.SetPathValue("group", created.AgeGroup)
	w = httptest.NewRecorder()
	screening.GetQuestionnaire(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var q subtests.Questionnaire
	testutil.AssertJSON(t, w, &q)

	ans := answers(len(q.Questions), subtests.AnswerNo)
	for i := 0; i < 5; i++ {
		ans[i] = subtests.AnswerYes
	}
	req = testutil.MakeRequest("POST", "/api/questionnaire/score", models.ScoreQuestionnaireRequest{
		Group:   created.AgeGroup,
		Answers: ans,
	}, nil)
	w = httptest.NewRecorder()
	screening.ScoreQuestionnaire(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var qs subtests.QuestionnaireScore
	testutil.AssertJSON(t, w, &qs)
	if qs.Score != 30 {
		t.Fatalf("Expected questionnaire score 30, got %d", qs.Score)
	}
	save("questionnaire", qs)

	// Step 3: Ratio sub-tests
	save("phoneme", map[string]int{"score": 8, "total": 10})
	save("pattern", map[string]int{"score": 5, "total": 10})

	// Preliminary assessment would apply with the questionnaire alone; now
	// there are skill tests so it is comprehensive.
	resp := getRisk(t, assessments, id, key, "")
	if resp.AssessmentType != risk.TypeComprehensive {
		t.Errorf("Expected comprehensive after skill tests, got %s", resp.AssessmentType)
	}

	// Step 4: Reading, evaluated from a transcript
	req = httptest.NewRequest("GET", "/api/reading/passage?age=7&index=1", nil)
	w = httptest.NewRecorder()
	screening.GetPassage(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var passage subtests.Passage
	testutil.AssertJSON(t, w, &passage)

	req = testutil.MakeRequest("POST", "/api/reading/evaluate", models.EvaluateReadingRequest{
		Passage:         passage.Text,
		Transcript:      passage.Text,
		DurationSeconds: 11,
	}, nil)
	w = httptest.NewRecorder()
	screening.EvaluateReading(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var ev subtests.ReadingEvaluation
	testutil.AssertJSON(t, w, &ev)
	if ev.WPM != 60 {
		t.Fatalf("Expected 60 wpm, got %v", ev.WPM)
	}
	save("reading", ev.Result())

	// Step 5: Complete
	req = assessmentRequest("POST", "/api/assessments/"+id+"/complete", id, key, nil)
	w = httptest.NewRecorder()
	assessments.CompleteAssessment(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 6: Risk. Questionnaire 75, phoneme 80, pattern 50, reading 100.
	resp = getRisk(t, assessments, id, key, "")
	if resp.Breakdown[risk.TestReading] != 100 {
		t.Errorf("Expected reading score 100, got %v", resp.Breakdown[risk.TestReading])
	}
	// 0.15*75 + 0.35*80 + 0.20*50 + 0.30*100
	if resp.CompositeScore != 79.25 {
		t.Errorf("Expected composite 79.25, got %v", resp.CompositeScore)
	}
	if resp.RiskLevel != risk.LevelLow {
		t.Errorf("Expected Low Risk, got %s", resp.RiskLevel)
	}
	if len(resp.CompletedTests) != 4 {
		t.Errorf("Expected 4 completed tests, got %v", resp.CompletedTests)
	}

	// Step 7: Report reflects completion
	req = assessmentRequest("GET", "/api/assessments/"+id+"/report", id, key, nil)
	w = httptest.NewRecorder()
	assessments.GetReport(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	report := w.Body.String()
	if strings.Contains(report, "not yet") {
		t.Error("Expected completed report")
	}
	if !strings.Contains(report, "Composite:  79.25 / 100") {
		t.Errorf("Expected composite in report\n%s", report)
	}

	// Step 8: Assessment view carries all four results
	req = assessmentRequest("GET", "/api/assessments/"+id, id, key, nil)
	w = httptest.NewRecorder()
	assessments.GetAssessment(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.AssessmentResponse
	testutil.AssertJSON(t, w, &view)
	if view.CompletedAt == nil {
		t.Error("Expected completion time")
	}
	if len(view.Results) != 4 {
		t.Errorf("Expected 4 results, got %d", len(view.Results))
	}
}

// TestLegacyResultKeys checks that results stored under older key names
// are still picked up by scoring.
func TestLegacyResultKeys(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)
	id, key := testutil.CreateTestAssessment(t, db, cfg, 4)

	_, err := db.Exec(`
		INSERT INTO assessment_result (assessment_id, test_type, payload, saved_at)
		VALUES ($1, 'pretest_3_5', '{"score":4,"total":5}', CURRENT_TIMESTAMP)
	`, id)
	if err != nil {
		t.Fatalf("Failed to insert legacy result: %v", err)
	}

	resp := getRisk(t, handler, id, key, "")
	if resp.Breakdown[risk.TestPretest] != 80 {
		t.Errorf("Expected pretest 80, got %v", resp.Breakdown[risk.TestPretest])
	}
	if len(resp.CompletedTests) != 1 || resp.CompletedTests[0] != risk.TestPretest {
		t.Errorf("Expected pretest completed, got %v", resp.CompletedTests)
	}
}

// TestResultsIsolatedPerAssessment verifies one child's results never
// leak into another's assessment.
func TestResultsIsolatedPerAssessment(t *testing.T) {
	handler, db, cfg := newAssessmentHandler(t, nil)

	ids := make([]string, 3)
	keys := make([]string, 3)
	for i := range ids {
		ids[i], keys[i] = testutil.CreateTestAssessment(t, db, cfg, 8)
		testutil.SaveTestResult(t, db, ids[i], risk.TestPhoneme, `{"score":`+strconv.Itoa(i+1)+`,"total":10}`)
	}

	for i := range ids {
		results := getResults(t, handler, ids[i], keys[i])
		var phoneme struct {
			Score int `json:"score"`
		}
		if err := json.Unmarshal(results["phoneme"], &phoneme); err != nil {
			t.Fatalf("Failed to decode result: %v", err)
		}
		if phoneme.Score != i+1 {
			t.Errorf("Assessment %d: expected score %d, got %d", i, i+1, phoneme.Score)
		}
	}
}
