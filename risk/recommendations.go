// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

var tierRecommendations = map[Level][]string{
	LevelHigh: {
		"Consult with a qualified educational psychologist or dyslexia specialist",
		"Consider comprehensive educational assessment",
		"Implement targeted interventions immediately",
		"Monitor progress closely with regular assessments",
	},
	LevelMedium: {
		"Continue monitoring with regular assessments",
		"Implement preventive interventions",
		"Consider consultation with educational specialist",
		"Focus on strengthening identified weak areas",
	},
	LevelLow: {
		"Continue normal educational activities",
		"Monitor for any emerging difficulties",
		"Maintain supportive learning environment",
		"Regular check-ins recommended",
	},
}

var preliminaryRecommendations = []string{
	"This is a preliminary assessment based on questionnaire responses",
	"Complete phoneme, pattern, and reading tests for accurate risk evaluation",
	"Return to view comprehensive results after completing all tests",
}

// Recommendations returns a copy of the fixed list for a tier. Unknown
// tiers get the Low Risk list.
func Recommendations(level Level) []string {
	recs, ok := tierRecommendations[level]
	if !ok {
		recs = tierRecommendations[LevelLow]
	}
	return append([]string(nil), recs...)
}
