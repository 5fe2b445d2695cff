// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import (
	"fmt"
	"math"
)

// Calculate classifies results with the default profile.
func Calculate(results Results, demo Demographics) (*Assessment, error) {
	return DefaultProfile().Calculate(results, demo)
}

// Calculate produces a deterministic risk classification. It fails only
// when the age is outside every bracket.
func (p *Profile) Calculate(results Results, demo Demographics) (*Assessment, error) {
	group, err := AgeGroupFor(demo.Age)
	if err != nil {
		return nil, err
	}
	bracket, err := p.Bracket(group)
	if err != nil {
		return nil, err
	}

	breakdown := p.Normalize(results, group)
	composite := weightedComposite(results, breakdown, bracket.Weights)
	indicators := evaluateIndicators(results, breakdown, bracket)
	level, confidence, path := classify(indicators, composite, bracket.Thresholds)

	weights := make(map[TestID]float64, len(AllTests))
	for _, id := range AllTests {
		weights[id] = bracket.Weights[id]
	}

	return &Assessment{
		AgeGroup:        group,
		AssessmentType:  AssessmentTypeFor(results),
		CompositeScore:  round2(composite),
		RiskLevel:       level,
		Confidence:      confidence,
		Breakdown:       breakdown,
		Weights:         weights,
		ApplicableTests: bracket.Applicable(),
		CompletedTests:  results.Completed(),
		Indicators:      indicators,
		Thresholds:      bracket.Thresholds,
		DecisionPath:    path,
		Recommendations: Recommendations(level),
	}, nil
}

// Normalize maps every sub-test onto 0-100. Absent tests score 0.
func (p *Profile) Normalize(results Results, group AgeGroup) map[TestID]float64 {
	b := p.Brackets[group]
	out := make(map[TestID]float64, len(AllTests))
	for _, id := range AllTests {
		out[id] = 0
	}

	if q := results.Questionnaire; q != nil && b.QuestionnaireMax > 0 {
		out[TestQuestionnaire] = clamp(q.Score / b.QuestionnaireMax * 100)
	}
	out[TestPretest] = ratioScore(results.Pretest)
	out[TestPhoneme] = ratioScore(results.Phoneme)
	out[TestPattern] = ratioScore(results.Pattern)
	out[TestNonsense] = ratioScore(results.Nonsense)
	if r := results.Reading; r != nil {
		out[TestReading] = readingScore(r, b.ExpectedWPM, p.ReadingAccuracyWeight)
	}
	return out
}

// ReadingAccuracy is correct words over all attempted words, as a
// percentage.
func ReadingAccuracy(r *ReadingResult) float64 {
	total := r.CorrectWords + r.ErrorCount
	if total <= 0 {
		return 0
	}
	return clamp(r.CorrectWords / total * 100)
}

func readingScore(r *ReadingResult, expectedWPM, accuracyWeight float64) float64 {
	speed := 0.0
	if expectedWPM > 0 {
		speed = clamp(r.WPM / expectedWPM * 100)
	}
	return clamp(ReadingAccuracy(r)*accuracyWeight + speed*(1-accuracyWeight))
}

func ratioScore(r *RatioResult) float64 {
	if r == nil || r.Total <= 0 {
		return 0
	}
	return clamp(r.Score / r.Total * 100)
}

// weightedComposite averages over tests that are present and carry weight.
// Missing tests are dropped from the denominator rather than scored as 0.
func weightedComposite(results Results, normalized, weights map[TestID]float64) float64 {
	var sum, total float64
	for _, id := range AllTests {
		w := weights[id]
		if w <= 0 || !results.Has(id) {
			continue
		}
		sum += normalized[id] * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return clamp(sum / total)
}

func classify(ind Indicators, composite float64, t Thresholds) (Level, Confidence, []string) {
	high, medium := len(ind.High), len(ind.Medium)
	switch {
	case high >= 2:
		return LevelHigh, ConfidenceHigh, []string{
			fmt.Sprintf("%d high-risk indicators (>= 2)", high),
		}
	case high >= 1 || medium >= 2:
		return LevelMedium, ConfidenceMedium, []string{
			fmt.Sprintf("%d high-risk / %d medium-risk indicators (>= 1 high or >= 2 medium)", high, medium),
		}
	}

	path := []string{"indicator cutoffs not reached; using composite thresholds"}
	switch {
	case composite >= t.High:
		return LevelLow, ConfidenceHigh, append(path,
			fmt.Sprintf("composite %.2f >= %.0f", composite, t.High))
	case composite >= t.Medium:
		return LevelMedium, ConfidenceMedium, append(path,
			fmt.Sprintf("composite %.2f >= %.0f", composite, t.Medium))
	default:
		return LevelHigh, ConfidenceMedium, append(path,
			fmt.Sprintf("composite %.2f < %.0f", composite, t.Medium))
	}
}

// AssessmentTypeFor is comprehensive once more than one sub-test is done
// and at least one of them is a skill test.
func AssessmentTypeFor(results Results) string {
	completed := results.Completed()
	if len(completed) > 1 {
		for _, id := range completed {
			if id != TestQuestionnaire {
				return TypeComprehensive
			}
		}
	}
	return TypePreliminary
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
