// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package subtests

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/dyscover/risk"
)

// ErrNoPassages is returned for brackets that skip the reading test.
var ErrNoPassages = errors.New("no reading passages for age group")

// minReadingMinutes keeps words-per-minute finite for very short clips.
const minReadingMinutes = 0.001

var passages = map[risk.AgeGroup][]string{
	risk.AgeGroupMid: {
		"The sun is big and yellow. I like to play outside when it is sunny.",
		"I see a red car. The car is small and fast.",
		"My dog likes to run in the park. He chases the ball.",
		"We have a big blue kite. It flies high in the sky.",
		"I can ride my bike. My bike is green and has a bell.",
	},
	risk.AgeGroupLate: {
		"Last Saturday, our school organized a large and lively science fair that brought together students, parents, and teachers from across all grades. Excited participants displayed their projects, proudly explaining the details to curious visitors. The exhibits ranged from bubbling homemade volcanoes to sleek, solar-powered cars that rolled smoothly across the tables. Parents and teachers moved slowly between the displays, stopping to ask thoughtful questions and offer praise. By the end of the day, the room was filled with an inspiring mix of learning, laughter, and discovery.",
		"In the early hours of the morning, the small fishing village began to stir as the first boats returned from the sea. Fishermen hauled in nets heavy with the day's fresh catches, their voices carrying across the cool, salty air. The scent of the ocean mingled with the sound of seagulls circling overhead, searching for scraps. Along the shore, children ran barefoot, chasing one another across the wet sand. Others crouched down to collect seashells, their hands full of colorful treasures from the tide.",
		"On her birthday, Neha was thrilled to receive a beautiful telescope from her uncle, who knew about her love for the night sky. That evening, she carefully set it up in the backyard, adjusting the stand until it was perfectly steady. Pointing the lens toward the glowing moon, she gasped at the sight of craters and dark shadows she had never seen before. The cool night air and the quiet surroundings made the moment feel magical. For the first time, she felt as if she were touching the mysteries of space with her own eyes.",
		"During the summer holidays, our family set out on a long journey to the mountains, eager to escape the heat of the city. The winding roads took us past forests, rivers, and valleys filled with fresh, cool air. A gentle roar of a nearby waterfall echoed through the hills, making the scenery even more peaceful. We hiked along narrow trails that twisted and turned between wildflowers in full bloom. Every few steps, we stopped to watch colorful birds dart through the branches above.",
		"The city park was completely transformed into a bright and bustling festival ground by the afternoon. Cheerful music played from large speakers, mixing with the sounds of laughter and conversation. Food stalls filled the air with the scent of popcorn, grilled snacks, and sweet desserts. Families gathered around open spaces to watch performers sing, dance, and tell stories. As the sun dipped below the horizon, fairy lights strung across the trees lit up the night, turning the park into a glowing wonderland.",
	},
}

// Passage is one reading passage.
type Passage struct {
	Group risk.AgeGroup `json:"group"`
	Index int           `json:"index"`
	Count int           `json:"count"`
	Text  string        `json:"text"`
}

// PassageFor returns passage index (modulo the bank size) for a bracket.
func PassageFor(group risk.AgeGroup, index int) (Passage, error) {
	bank := passages[group]
	if len(bank) == 0 {
		return Passage{}, fmt.Errorf("%w %s", ErrNoPassages, group)
	}
	i := index % len(bank)
	if i < 0 {
		i += len(bank)
	}
	return Passage{Group: group, Index: i, Count: len(bank), Text: bank[i]}, nil
}

// ReadingEvaluation is the word-level comparison of a read-aloud.
type ReadingEvaluation struct {
	WPM              float64  `json:"wpm"`
	ErrorCount       int      `json:"errorCount"`
	CorrectWords     int      `json:"correctWords"`
	OmittedWords     int      `json:"omittedWords"`
	AddedWords       int      `json:"addedWords"`
	DurationSeconds  float64  `json:"duration"`
	OriginalWords    []string `json:"originalWords"`
	TranscribedWords []string `json:"transcribedWords"`
}

// Result converts the evaluation into the stored reading result.
func (e ReadingEvaluation) Result() risk.ReadingResult {
	return risk.ReadingResult{
		WPM:          e.WPM,
		ErrorCount:   float64(e.ErrorCount),
		CorrectWords: float64(e.CorrectWords),
	}
}

var readingPunctuation = strings.NewReplacer(".", "", ",", "", "!", "", "?", "", ";", "", ":", "")

func readingWords(s string) []string {
	lower := cases.Lower(language.English).String(s)
	return strings.Fields(readingPunctuation.Replace(lower))
}

// EvaluateReading compares a transcript against the passage position by
// position. A mismatch, a word left out, and an extra word each count as
// one error.
func EvaluateReading(passage, transcript string, duration time.Duration) ReadingEvaluation {
	original := readingWords(passage)
	spoken := readingWords(transcript)

	minutes := math.Max(minReadingMinutes, duration.Minutes())
	ev := ReadingEvaluation{
		WPM:              math.Round(float64(len(spoken))/minutes*100) / 100,
		DurationSeconds:  duration.Seconds(),
		OriginalWords:    original,
		TranscribedWords: spoken,
	}

	for i := 0; i < max(len(original), len(spoken)); i++ {
		switch {
		case i < len(original) && i < len(spoken):
			if original[i] == spoken[i] {
				ev.CorrectWords++
			} else {
				ev.ErrorCount++
			}
		case i < len(original):
			ev.OmittedWords++
			ev.ErrorCount++
		default:
			ev.AddedWords++
			ev.ErrorCount++
		}
	}
	return ev
}
