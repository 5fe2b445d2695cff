// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/dyscover/risk"
)

const promptInstructions = `Please provide 4-6 specific, actionable, and age-appropriate recommendations for this child. Focus on:
1. Addressing the specific weak areas identified
2. Building on their strengths
3. Age-appropriate interventions and activities
4. Parent-friendly language
5. Practical steps that can be taken at home or school

Format your response as a numbered list, with each recommendation on a new line starting with a number and period (e.g., "1. ..."). Do not include any additional text or explanations, just the numbered recommendations.`

// BuildPrompt renders the model prompt for one child.
func BuildPrompt(demo risk.Demographics, a *risk.Assessment, areas Areas, results risk.Results) string {
	var b strings.Builder

	b.WriteString("You are an educational specialist providing personalized recommendations for a child's dyslexia risk assessment.\n\n")
	b.WriteString("Child Information:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", demo.First, demo.Last)
	fmt.Fprintf(&b, "- Age: %d years old (%s age group)\n", demo.Age, a.AgeGroup)
	fmt.Fprintf(&b, "- Gender: %s\n", demo.Sex)
	fmt.Fprintf(&b, "- Overall Risk Level: %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "- Composite Score: %s/100\n\n", num(a.CompositeScore))
	b.WriteString("Test Results:")

	writeList(&b, "Areas Needing Support", areas.Weak)
	writeList(&b, "Areas of Strength", areas.Strong)

	if q := results.Questionnaire; q != nil {
		maxPoints := q.MaxPoints
		if maxPoints <= 0 {
			maxPoints = 40
		}
		fmt.Fprintf(&b, "\n\nQuestionnaire Score: %s/%s", num(q.Score), num(maxPoints))
	}
	writeRatio(&b, "Phoneme Test", results.Phoneme)
	if r := results.Reading; r != nil {
		fmt.Fprintf(&b, "\n\nReading Test: %s words per minute, %s errors, %s correct words",
			num(r.WPM), num(r.ErrorCount), num(r.CorrectWords))
	}
	writeRatio(&b, "Pattern Recognition", results.Pattern)
	writeRatio(&b, "Nonsense Word Decoding", results.Nonsense)
	writeRatio(&b, "Pretest", results.Pretest)

	b.WriteString("\n\n")
	b.WriteString(promptInstructions)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n%s:", title)
	for i, item := range items {
		fmt.Fprintf(b, "\n%d. %s", i+1, item)
	}
}

func writeRatio(b *strings.Builder, label string, r *risk.RatioResult) {
	if r == nil {
		return
	}
	fmt.Fprintf(b, "\n\n%s: %s/%s correct", label, num(r.Score), num(r.Total))
}
