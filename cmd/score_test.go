// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/dyscover/risk"
)

func writeResults(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const strongResults = `{
	"phoneme": {"score": 8, "total": 10},
	"pattern": {"score": 5, "total": 10},
	"reading": {"wpm": 60, "correctWords": 11, "errorCount": 0, "totalWords": 11}
}`

func TestRunScore_JSON(t *testing.T) {
	path := writeResults(t, strongResults)

	var out bytes.Buffer
	require.NoError(t, runScore(&out, path, scoreOptions{age: 7, asJSON: true}))

	var a risk.Assessment
	require.NoError(t, json.Unmarshal(out.Bytes(), &a))
	assert.Equal(t, risk.AgeGroup("6-8"), a.AgeGroup)
	assert.Equal(t, risk.TypeComprehensive, a.AssessmentType)
	assert.Len(t, a.CompletedTests, 3)
}

func TestRunScore_Rendered(t *testing.T) {
	path := writeResults(t, `{"phoneme": {"score": 2, "total": 10}}`)

	var out bytes.Buffer
	require.NoError(t, runScore(&out, path, scoreOptions{age: 10}))

	text := out.String()
	assert.Contains(t, text, "Dyslexia risk screening")
	assert.Contains(t, text, string(risk.LevelMedium))
	assert.Contains(t, text, "Phoneme awareness (20% accuracy)")
	assert.True(t, strings.Contains(text, "1. "), "expected numbered recommendations")
}

func TestRunScore_Errors(t *testing.T) {
	var out bytes.Buffer

	err := runScore(&out, filepath.Join(t.TempDir(), "missing.json"), scoreOptions{age: 7})
	assert.Error(t, err)

	err = runScore(&out, writeResults(t, `[1, 2]`), scoreOptions{age: 7})
	assert.Error(t, err)

	err = runScore(&out, writeResults(t, strongResults), scoreOptions{age: 15})
	assert.Error(t, err)

	err = runScore(&out, writeResults(t, strongResults), scoreOptions{age: 7, profile: "/does/not/exist.yaml"})
	assert.Error(t, err)
}

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	keygenCmd.SetOut(&out)
	require.NoError(t, keygenCmd.RunE(keygenCmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ACCESS_KEY_SALT="))
	assert.True(t, strings.HasPrefix(lines[1], "EXPORT_KEY="))
	assert.NotEqual(t, strings.SplitN(lines[0], "=", 2)[1], strings.SplitN(lines[1], "=", 2)[1])
}
