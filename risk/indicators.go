// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

// Indicator cutoffs on the 0-100 scale. These are fixed; only weights and
// composite thresholds are profile-driven.
const (
	questionnaireHighCutoff   = 80
	questionnaireMediumCutoff = 60
	questionnaireLowCutoff    = 30
	phonemeHighCutoff         = 30
	readingHighCutoff         = 40
	patternMediumCutoff       = 30
	skillLowCutoff            = 70
)

// evaluateIndicators applies the rule set. Only present tests raise
// indicators; skill tests must also be applicable to the bracket.
func evaluateIndicators(results Results, n map[TestID]float64, b BracketProfile) Indicators {
	ind := Indicators{High: []string{}, Medium: []string{}, Low: []string{}}
	counts := func(id TestID) bool {
		return results.Has(id) && b.Weights[id] > 0
	}

	if results.Has(TestQuestionnaire) {
		q := n[TestQuestionnaire]
		switch {
		case q > questionnaireHighCutoff:
			ind.High = append(ind.High, "High questionnaire score (>80%)")
		case q > questionnaireMediumCutoff:
			ind.Medium = append(ind.Medium, "Moderate questionnaire score (60-80%)")
		case q < questionnaireLowCutoff:
			ind.Low = append(ind.Low, "Low questionnaire score (<30%)")
		}
	}

	if counts(TestPhoneme) {
		switch p := n[TestPhoneme]; {
		case p < phonemeHighCutoff:
			ind.High = append(ind.High, "Poor phoneme performance (<30%)")
		case p > skillLowCutoff:
			ind.Low = append(ind.Low, "Good phoneme performance (>70%)")
		}
	}

	if counts(TestReading) {
		switch r := n[TestReading]; {
		case r < readingHighCutoff:
			ind.High = append(ind.High, "Poor reading performance (<40%)")
		case r > skillLowCutoff:
			ind.Low = append(ind.Low, "Good reading performance (>70%)")
		}
	}

	if counts(TestPattern) && n[TestPattern] < patternMediumCutoff {
		ind.Medium = append(ind.Medium, "Poor pattern recognition (<30%)")
	}

	return ind
}
