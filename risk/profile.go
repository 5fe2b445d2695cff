// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package risk

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// weightEpsilon is the tolerance for a weight vector summing to 1.
const weightEpsilon = 1e-6

// BracketProfile holds the scoring constants for one age bracket.
type BracketProfile struct {
	Weights          map[TestID]float64 `yaml:"weights"`
	Thresholds       Thresholds         `yaml:"thresholds"`
	ExpectedWPM      float64            `yaml:"expected_wpm"`
	QuestionnaireMax float64            `yaml:"questionnaire_max"`
}

// Profile is the full set of scoring constants.
type Profile struct {
	// ReadingAccuracyWeight is the accuracy share of the reading score;
	// the remainder goes to speed.
	ReadingAccuracyWeight float64                     `yaml:"reading_accuracy_weight"`
	Brackets              map[AgeGroup]BracketProfile `yaml:"brackets"`
}

// DefaultProfile returns the built-in scoring constants. Each call returns
// a fresh copy.
func DefaultProfile() *Profile {
	return &Profile{
		ReadingAccuracyWeight: 0.7,
		Brackets: map[AgeGroup]BracketProfile{
			AgeGroupEarly: {
				Weights: map[TestID]float64{
					TestQuestionnaire: 0.20,
					TestPretest:       0.40,
					TestPhoneme:       0.25,
					TestNonsense:      0.15,
				},
				Thresholds:       Thresholds{Low: 30, Medium: 50, High: 70},
				ExpectedWPM:      20,
				QuestionnaireMax: 36,
			},
			AgeGroupMid: {
				Weights: map[TestID]float64{
					TestQuestionnaire: 0.15,
					TestPhoneme:       0.35,
					TestPattern:       0.20,
					TestReading:       0.30,
				},
				Thresholds:       Thresholds{Low: 25, Medium: 45, High: 65},
				ExpectedWPM:      60,
				QuestionnaireMax: 40,
			},
			AgeGroupLate: {
				Weights: map[TestID]float64{
					TestQuestionnaire: 0.10,
					TestPhoneme:       0.30,
					TestPattern:       0.10,
					TestReading:       0.45,
					TestNonsense:      0.05,
				},
				Thresholds:       Thresholds{Low: 20, Medium: 40, High: 60},
				ExpectedWPM:      120,
				QuestionnaireMax: 40,
			},
		},
	}
}

// LoadProfile reads a YAML profile on top of the defaults. A bracket
// present in the file replaces the default bracket entirely.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile is LoadProfile without the file read.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse scoring profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every bracket is present and internally consistent.
func (p *Profile) Validate() error {
	var errs []error
	if p.ReadingAccuracyWeight < 0 || p.ReadingAccuracyWeight > 1 {
		errs = append(errs, fmt.Errorf("reading_accuracy_weight %.3f outside [0,1]", p.ReadingAccuracyWeight))
	}
	for _, g := range AgeGroups {
		b, ok := p.Brackets[g]
		if !ok {
			errs = append(errs, fmt.Errorf("bracket %s: missing", g))
			continue
		}
		if err := b.validate(); err != nil {
			errs = append(errs, fmt.Errorf("bracket %s: %w", g, err))
		}
	}
	for g := range p.Brackets {
		if _, err := ParseAgeGroup(string(g)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b BracketProfile) validate() error {
	sum := 0.0
	for id, w := range b.Weights {
		if _, err := ParseTestID(string(id)); err != nil {
			return err
		}
		if w < 0 {
			return fmt.Errorf("negative weight %.3f for %s", w, id)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("weights sum to %.6f, want 1", sum)
	}
	t := b.Thresholds
	if t.Low < 0 || t.Low > t.Medium || t.Medium > t.High || t.High > 100 {
		return fmt.Errorf("thresholds must satisfy 0 <= low <= medium <= high <= 100, got %+v", t)
	}
	if b.ExpectedWPM <= 0 {
		return errors.New("expected_wpm must be positive")
	}
	if b.QuestionnaireMax <= 0 {
		return errors.New("questionnaire_max must be positive")
	}
	return nil
}

// Bracket returns the constants for an age group.
func (p *Profile) Bracket(g AgeGroup) (BracketProfile, error) {
	b, ok := p.Brackets[g]
	if !ok {
		return BracketProfile{}, fmt.Errorf("no scoring profile for age group %s", g)
	}
	return b, nil
}

// Applicable returns the tests with a positive weight, in canonical order.
func (b BracketProfile) Applicable() []TestID {
	out := []TestID{}
	for _, id := range AllTests {
		if b.Weights[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}
