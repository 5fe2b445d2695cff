// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"regexp"
	"strings"
)

const (
	maxRecommendations = 6
	minListItemLen     = 10
	minFreeLineLen     = 15
)

var (
	numberedLine = regexp.MustCompile(`^\d+[.)]\s*(.+)$`)
	bulletLine   = regexp.MustCompile(`^[-•*]\s*(.+)$`)
	metaLine     = regexp.MustCompile(`(?i)^(please|format|note|important)`)
)

// ParseRecommendations extracts list items from model output. Numbered
// and bulleted items are kept when longer than 10 characters; other lines
// need more than 15 characters and must not be instructions. Duplicates
// are dropped and at most six items are returned.
func ParseRecommendations(text string) []string {
	text = strings.ReplaceAll(text, "*", "")

	out := []string{}
	seen := make(map[string]bool)
	add := func(rec string, minLen int) {
		if len(rec) <= minLen || seen[rec] {
			return
		}
		seen[rec] = true
		out = append(out, rec)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			add(strings.TrimSpace(m[1]), minListItemLen)
		} else if m := bulletLine.FindStringSubmatch(line); m != nil {
			add(strings.TrimSpace(m[1]), minListItemLen)
		} else if !metaLine.MatchString(line) {
			add(line, minFreeLineLen)
		}
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}
