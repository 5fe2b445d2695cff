// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"fmt"
	"math"
	"strconv"

	"github.com/danielhkuo/dyscover/risk"
)

const (
	weakSkillCutoff           = 50
	questionnaireWeakCutoff   = 70
	questionnaireStrongCutoff = 30
)

// Areas splits the completed sub-tests into strengths and weaknesses.
type Areas struct {
	Weak   []string `json:"weak"`
	Strong []string `json:"strong"`
}

// Analyze classifies each completed sub-test using its normalized score.
func Analyze(results risk.Results, breakdown map[risk.TestID]float64) Areas {
	a := Areas{Weak: []string{}, Strong: []string{}}

	if results.Questionnaire != nil {
		switch q := breakdown[risk.TestQuestionnaire]; {
		case q > questionnaireWeakCutoff:
			a.Weak = append(a.Weak, "Questionnaire responses indicate significant concerns")
		case q < questionnaireStrongCutoff:
			a.Strong = append(a.Strong, "Questionnaire responses show minimal concerns")
		}
	}

	skill := func(id risk.TestID, label string) {
		if !results.Has(id) {
			return
		}
		s := breakdown[id]
		area := fmt.Sprintf("%s (%d%% accuracy)", label, int(math.Round(s)))
		if s < weakSkillCutoff {
			a.Weak = append(a.Weak, area)
		} else {
			a.Strong = append(a.Strong, area)
		}
	}
	skill(risk.TestPhoneme, "Phoneme awareness")
	skill(risk.TestPattern, "Pattern recognition")

	if r := results.Reading; r != nil {
		acc := risk.ReadingAccuracy(r)
		if breakdown[risk.TestReading] < weakSkillCutoff || acc < weakSkillCutoff {
			a.Weak = append(a.Weak, fmt.Sprintf("Reading fluency (%s WPM, %d%% accuracy, %s errors)",
				num(r.WPM), int(math.Round(acc)), num(r.ErrorCount)))
		} else {
			a.Strong = append(a.Strong, fmt.Sprintf("Reading fluency (%s WPM, %d%% accuracy)",
				num(r.WPM), int(math.Round(acc))))
		}
	}

	skill(risk.TestNonsense, "Nonsense word decoding")
	skill(risk.TestPretest, "Pretest performance")
	return a
}

// num formats a float without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
