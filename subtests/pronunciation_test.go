// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package subtests

import "testing"

func TestCheckPronunciation(t *testing.T) {
	tests := []struct {
		target, transcript string
		want               int
	}{
		{"cat", "cat", 1},
		{"Cat", " CAT. ", 1},
		{"cat", "I said cat!", 1},
		{"cat", "category", 0},
		{"cat", "bat", 0},
		{"ice cream", "ice cream", 1},
		{"ice cream", "I like ice cream", 0},
		{"", "anything", 0},
		{"dog", "", 0},
	}
	for _, tt := range tests {
		if got := CheckPronunciation(tt.target, tt.transcript); got != tt.want {
			t.Errorf("CheckPronunciation(%q, %q) = %d, want %d", tt.target, tt.transcript, got, tt.want)
		}
	}
}
