// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package subtests

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CheckPronunciation returns 1 when the target word appears as a whole
// alphabetic token of the transcript, or equals the whole transcript.
// Otherwise it returns 0.
func CheckPronunciation(target, transcript string) int {
	lower := cases.Lower(language.English)
	target = lower.String(strings.TrimSpace(target))
	transcript = lower.String(strings.TrimSpace(transcript))
	if target == "" {
		return 0
	}
	if target == transcript {
		return 1
	}
	tokens := strings.FieldsFunc(transcript, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
	})
	if slices.Contains(tokens, target) {
		return 1
	}
	return 0
}
