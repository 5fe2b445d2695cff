// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import (
	"errors"
	"fmt"
	"time"
)

// ErrAgeOutOfRange is returned for ages outside 3-12.
var ErrAgeOutOfRange = errors.New("age out of range (3-12)")

// AgeGroup is one of the three screening brackets.
type AgeGroup string

const (
	AgeGroupEarly AgeGroup = "3-5"
	AgeGroupMid   AgeGroup = "6-8"
	AgeGroupLate  AgeGroup = "9-12"
)

// AgeGroups lists the brackets in ascending order.
var AgeGroups = []AgeGroup{AgeGroupEarly, AgeGroupMid, AgeGroupLate}

// AgeGroupFor maps an age in years to its bracket.
func AgeGroupFor(age int) (AgeGroup, error) {
	switch {
	case age >= 3 && age <= 5:
		return AgeGroupEarly, nil
	case age >= 6 && age <= 8:
		return AgeGroupMid, nil
	case age >= 9 && age <= 12:
		return AgeGroupLate, nil
	}
	return "", fmt.Errorf("%w: %d", ErrAgeOutOfRange, age)
}

// ParseAgeGroup validates a bracket label such as "6-8".
func ParseAgeGroup(s string) (AgeGroup, error) {
	for _, g := range AgeGroups {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown age group %q", s)
}

// TestID identifies a sub-test.
type TestID string

const (
	TestQuestionnaire TestID = "questionnaire"
	TestPretest       TestID = "pretest"
	TestPhoneme       TestID = "phoneme"
	TestPattern       TestID = "pattern"
	TestReading       TestID = "reading"
	TestNonsense      TestID = "nonsense"
)

// AllTests is the canonical iteration order. Composite sums run in this
// order so results are bit-for-bit reproducible.
var AllTests = []TestID{
	TestQuestionnaire,
	TestPretest,
	TestPhoneme,
	TestPattern,
	TestReading,
	TestNonsense,
}

// ParseTestID validates a sub-test identifier.
func ParseTestID(s string) (TestID, error) {
	for _, id := range AllTests {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown test type %q", s)
}

// RatioResult is a correct-out-of-total sub-test (pretest, phoneme,
// pattern, nonsense).
type RatioResult struct {
	Score   float64    `json:"score"`
	Total   float64    `json:"total"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

// QuestionnaireResult is the parent questionnaire outcome.
type QuestionnaireResult struct {
	Score     float64    `json:"score"`
	Level     string     `json:"level,omitempty"`
	Group     string     `json:"group,omitempty"`
	MaxPoints float64    `json:"maxPoints,omitempty"`
	SavedAt   *time.Time `json:"savedAt,omitempty"`
}

// ReadingResult is the reading-fluency recording outcome.
type ReadingResult struct {
	WPM          float64    `json:"wpm"`
	ErrorCount   float64    `json:"errorCount"`
	CorrectWords float64    `json:"correctWords"`
	SavedAt      *time.Time `json:"savedAt,omitempty"`
}

// Results holds whichever sub-tests have been completed. A nil field means
// the test is absent.
type Results struct {
	Questionnaire *QuestionnaireResult `json:"questionnaire,omitempty"`
	Pretest       *RatioResult         `json:"pretest,omitempty"`
	Phoneme       *RatioResult         `json:"phoneme,omitempty"`
	Pattern       *RatioResult         `json:"pattern,omitempty"`
	Reading       *ReadingResult       `json:"reading,omitempty"`
	Nonsense      *RatioResult         `json:"nonsense,omitempty"`
}

// Has reports whether the sub-test is present.
func (r Results) Has(id TestID) bool {
	switch id {
	case TestQuestionnaire:
		return r.Questionnaire != nil
	case TestPretest:
		return r.Pretest != nil
	case TestPhoneme:
		return r.Phoneme != nil
	case TestPattern:
		return r.Pattern != nil
	case TestReading:
		return r.Reading != nil
	case TestNonsense:
		return r.Nonsense != nil
	}
	return false
}

// Completed returns the present sub-tests in canonical order.
func (r Results) Completed() []TestID {
	out := []TestID{}
	for _, id := range AllTests {
		if r.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Demographics describes the child being screened.
type Demographics struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Age   int    `json:"age"`
	Sex   string `json:"sex"`
}

// Level is the final risk tier.
type Level string

const (
	LevelLow    Level = "Low Risk"
	LevelMedium Level = "Medium Risk"
	LevelHigh   Level = "High Risk"
)

// Confidence qualifies a classification.
type Confidence string

const (
	ConfidenceHigh        Confidence = "high"
	ConfidenceMedium      Confidence = "medium"
	ConfidencePreliminary Confidence = "preliminary"
)

// Assessment types
const (
	TypeComprehensive = "comprehensive"
	TypePreliminary   = "preliminary"
)

// Indicators are the decision-tree flags raised by the rule set.
type Indicators struct {
	High   []string `json:"high"`
	Medium []string `json:"medium"`
	Low    []string `json:"low"`
}

// Thresholds are the composite cutoffs for a bracket. Higher composite
// means stronger performance and therefore lower risk.
type Thresholds struct {
	Low    float64 `json:"low" yaml:"low"`
	Medium float64 `json:"medium" yaml:"medium"`
	High   float64 `json:"high" yaml:"high"`
}

// Assessment is the derived, never-persisted risk classification.
type Assessment struct {
	AgeGroup        AgeGroup           `json:"ageGroup"`
	AssessmentType  string             `json:"assessmentType"`
	CompositeScore  float64            `json:"compositeScore"`
	RiskLevel       Level              `json:"riskLevel"`
	Confidence      Confidence         `json:"confidence"`
	Breakdown       map[TestID]float64 `json:"breakdown"`
	Weights         map[TestID]float64 `json:"weights"`
	ApplicableTests []TestID           `json:"applicableTests"`
	CompletedTests  []TestID           `json:"completedTests"`
	Indicators      Indicators         `json:"indicators"`
	Thresholds      Thresholds         `json:"thresholds"`
	DecisionPath    []string           `json:"decisionPath"`
	Recommendations []string           `json:"recommendations"`
}
