// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import "strings"

// questionnaireCutoffs are the parent-questionnaire bands. Answers are
// reverse-scored (Yes=0 ... No=2), so a low total means high concern.
var questionnaireCutoffs = map[AgeGroup]struct{ lowMin, mediumMin float64 }{
	AgeGroupEarly: {lowMin: 25, mediumMin: 13},
	AgeGroupMid:   {lowMin: 28, mediumMin: 16},
	AgeGroupLate:  {lowMin: 28, mediumMin: 16},
}

// QuestionnaireLevel categorizes a raw questionnaire total.
func QuestionnaireLevel(group AgeGroup, score float64) Level {
	c, ok := questionnaireCutoffs[group]
	if !ok {
		return ""
	}
	switch {
	case score >= c.lowMin:
		return LevelLow
	case score >= c.mediumMin:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// parseLevel accepts both "Medium Risk" and the questionnaire's own
// lower-case "Medium risk".
func parseLevel(s string) (Level, bool) {
	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh} {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, true
		}
	}
	return "", false
}

// Evaluate returns a preliminary assessment when the questionnaire is the
// only completed sub-test and otherwise defers to Calculate.
func (p *Profile) Evaluate(results Results, demo Demographics) (*Assessment, error) {
	completed := results.Completed()
	if len(completed) != 1 || completed[0] != TestQuestionnaire {
		return p.Calculate(results, demo)
	}

	group, err := AgeGroupFor(demo.Age)
	if err != nil {
		return nil, err
	}
	bracket, err := p.Bracket(group)
	if err != nil {
		return nil, err
	}

	q := results.Questionnaire
	maxPoints := q.MaxPoints
	if maxPoints <= 0 {
		maxPoints = bracket.QuestionnaireMax
	}
	pct := round2(clamp(q.Score / maxPoints * 100))

	level, ok := parseLevel(q.Level)
	if !ok {
		level = QuestionnaireLevel(group, q.Score)
	}

	breakdown := p.Normalize(results, group)
	breakdown[TestQuestionnaire] = pct

	weights := make(map[TestID]float64, len(AllTests))
	for _, id := range AllTests {
		weights[id] = bracket.Weights[id]
	}

	return &Assessment{
		AgeGroup:        group,
		AssessmentType:  TypePreliminary,
		CompositeScore:  pct,
		RiskLevel:       level,
		Confidence:      ConfidencePreliminary,
		Breakdown:       breakdown,
		Weights:         weights,
		ApplicableTests: bracket.Applicable(),
		CompletedTests:  completed,
		Indicators: Indicators{
			High:   []string{},
			Medium: []string{},
			Low:    []string{},
		},
		Thresholds: bracket.Thresholds,
		DecisionPath: []string{
			"Preliminary assessment based on questionnaire only",
			"Complete additional tests for comprehensive assessment",
		},
		Recommendations: append([]string(nil), preliminaryRecommendations...),
	}, nil
}

// Evaluate runs Profile.Evaluate with the default profile.
func Evaluate(results Results, demo Demographics) (*Assessment, error) {
	return DefaultProfile().Evaluate(results, demo)
}
