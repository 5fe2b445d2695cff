// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import (
	"encoding/json"
	"time"
)

// storageKeys maps every accepted key to its sub-test. Later entries for
// the same test win, matching the order the screening flow writes them.
var storageKeys = []struct {
	key  string
	test TestID
}{
	{"questionnaire", TestQuestionnaire},
	{"questionnaireResult", TestQuestionnaire},
	{"pretest", TestPretest},
	{"pretest_3_5", TestPretest},
	{"pattern", TestPattern},
	{"pretest_6_8", TestPattern},
	{"pretest_9_12", TestPattern},
	{"phoneme", TestPhoneme},
	{"phoneme_3_5", TestPhoneme},
	{"phoneme_6_8", TestPhoneme},
	{"phoneme_9_12", TestPhoneme},
	{"reading", TestReading},
	{"readingResult", TestReading},
	{"nonsense", TestNonsense},
	{"nonsense_3_5", TestNonsense},
	{"nonsense_6_8", TestNonsense},
	{"nonsenseResult", TestNonsense},
}

// Collect builds Results from raw stored entries. Entries that fail to
// parse or lack their required fields are skipped.
func Collect(entries map[string]json.RawMessage) Results {
	var r Results
	for _, sk := range storageKeys {
		raw, ok := entries[sk.key]
		if !ok || len(raw) == 0 {
			continue
		}
		switch sk.test {
		case TestQuestionnaire:
			if q, ok := parseQuestionnaire(raw); ok {
				r.Questionnaire = q
			}
		case TestReading:
			if rd, ok := parseReading(raw); ok {
				r.Reading = rd
			}
		default:
			rr, ok := parseRatio(raw)
			if !ok {
				continue
			}
			switch sk.test {
			case TestPretest:
				r.Pretest = rr
			case TestPattern:
				r.Pattern = rr
			case TestPhoneme:
				r.Phoneme = rr
			case TestNonsense:
				r.Nonsense = rr
			}
		}
	}
	return r
}

type rawEntry struct {
	Score        *float64 `json:"score"`
	Total        *float64 `json:"total"`
	Level        string   `json:"level"`
	Group        string   `json:"group"`
	MaxPoints    float64  `json:"maxPoints"`
	WPM          *float64 `json:"wpm"`
	ErrorCount   float64  `json:"errorCount"`
	CorrectWords float64  `json:"correctWords"`
	SavedAt      string   `json:"savedAt"`
}

// savedAt tolerates missing or non-RFC3339 timestamps.
func (e rawEntry) savedAt() *time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.SavedAt)
	if err != nil {
		return nil
	}
	return &t
}

func decodeEntry(raw json.RawMessage) (rawEntry, bool) {
	var e rawEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return rawEntry{}, false
	}
	return e, true
}

func parseQuestionnaire(raw json.RawMessage) (*QuestionnaireResult, bool) {
	e, ok := decodeEntry(raw)
	if !ok || e.Score == nil {
		return nil, false
	}
	return &QuestionnaireResult{
		Score:     *e.Score,
		Level:     e.Level,
		Group:     e.Group,
		MaxPoints: e.MaxPoints,
		SavedAt:   e.savedAt(),
	}, true
}

func parseRatio(raw json.RawMessage) (*RatioResult, bool) {
	e, ok := decodeEntry(raw)
	if !ok || e.Score == nil || e.Total == nil {
		return nil, false
	}
	return &RatioResult{Score: *e.Score, Total: *e.Total, SavedAt: e.savedAt()}, true
}

func parseReading(raw json.RawMessage) (*ReadingResult, bool) {
	e, ok := decodeEntry(raw)
	if !ok || e.WPM == nil {
		return nil, false
	}
	return &ReadingResult{
		WPM:          *e.WPM,
		ErrorCount:   e.ErrorCount,
		CorrectWords: e.CorrectWords,
		SavedAt:      e.savedAt(),
	}, true
}
