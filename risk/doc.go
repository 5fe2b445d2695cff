// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package risk aggregates sub-test results into a dyslexia risk classification.

# Pipeline

Calculate runs the same fixed steps for every request:

  - map the child's age to an age bracket (3-5, 6-8, 9-12)
  - normalize each present sub-test onto 0-100
  - take the weighted average over tests that are both present and
    applicable to the bracket (weight > 0)
  - count high/medium/low risk indicators
  - classify: indicator cutoffs first, composite thresholds otherwise
  - attach the tier's recommendation list

	assessment, err := risk.Calculate(results, risk.Demographics{Age: 7})

# Profiles

Weights, thresholds, expected reading speed and questionnaire maxima live in
a Profile. DefaultProfile returns the built-in values; LoadProfile reads a
YAML override and validates it (weights must sum to 1 per bracket).

# Preliminary Assessments

Evaluate wraps Calculate: when the questionnaire is the only completed
sub-test it returns a preliminary assessment built from the questionnaire
alone.

# Collecting Results

Collect turns a key/value map of raw JSON (browser storage keys or the
store's test identifiers) into typed Results, skipping incomplete entries.
*/
package risk
