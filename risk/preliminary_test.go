// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireLevel(t *testing.T) {
	tests := []struct {
		group AgeGroup
		score float64
		want  Level
	}{
		{AgeGroupEarly, 36, LevelLow},
		{AgeGroupEarly, 25, LevelLow},
		{AgeGroupEarly, 24, LevelMedium},
		{AgeGroupEarly, 13, LevelMedium},
		{AgeGroupEarly, 12, LevelHigh},
		{AgeGroupMid, 28, LevelLow},
		{AgeGroupMid, 27, LevelMedium},
		{AgeGroupMid, 16, LevelMedium},
		{AgeGroupLate, 15, LevelHigh},
		{AgeGroupLate, 0, LevelHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuestionnaireLevel(tt.group, tt.score), "%s score %v", tt.group, tt.score)
	}
	assert.Equal(t, Level(""), QuestionnaireLevel("13-15", 10))
}

func TestEvaluate_QuestionnaireOnly(t *testing.T) {
	a, err := Evaluate(Results{
		Questionnaire: &QuestionnaireResult{Score: 30, MaxPoints: 36, Level: "Low risk"},
	}, Demographics{Age: 4})
	require.NoError(t, err)

	assert.Equal(t, TypePreliminary, a.AssessmentType)
	assert.Equal(t, ConfidencePreliminary, a.Confidence)
	assert.Equal(t, 83.33, a.CompositeScore)
	assert.Equal(t, LevelLow, a.RiskLevel)
	assert.Equal(t, []TestID{TestQuestionnaire}, a.CompletedTests)
	assert.Equal(t, preliminaryRecommendations, a.Recommendations)
	assert.Empty(t, a.Indicators.High)
}

func TestEvaluate_QuestionnaireOnlyDerivesLevel(t *testing.T) {
	a, err := Evaluate(Results{
		Questionnaire: &QuestionnaireResult{Score: 10},
	}, Demographics{Age: 11})
	require.NoError(t, err)

	assert.Equal(t, LevelHigh, a.RiskLevel)
	assert.Equal(t, 25.0, a.CompositeScore)
}

func TestEvaluate_DefersToCalculate(t *testing.T) {
	results := Results{
		Questionnaire: &QuestionnaireResult{Score: 30},
		Phoneme:       ratio(7, 10),
	}
	demo := Demographics{Age: 7}

	got, err := Evaluate(results, demo)
	require.NoError(t, err)
	want, err := Calculate(results, demo)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := Evaluate(Results{}, demo)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.CompositeScore)
}

func TestEvaluate_RejectsOutOfRangeAge(t *testing.T) {
	_, err := Evaluate(Results{Questionnaire: &QuestionnaireResult{Score: 10}}, Demographics{Age: 2})
	assert.ErrorIs(t, err, ErrAgeOutOfRange)
}

func TestRecommendations_ReturnsCopy(t *testing.T) {
	recs := Recommendations(LevelHigh)
	recs[0] = "changed"
	assert.NotEqual(t, "changed", Recommendations(LevelHigh)[0])
	assert.Equal(t, Recommendations(LevelLow), Recommendations("Unknown"))
}
