// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/dyscover/auth"
	"github.com/danielhkuo/dyscover/cliparse"
	"github.com/danielhkuo/dyscover/db"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/store"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// Each call gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}

	conn, _, err := db.Open(db.TypeSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.TypeSQLite,
		AccessKeySalt: "test-access-salt",
		ExportKey:     "test-export-key",
		LLMTimeout:    time.Second,
	}
}

// CreateTestAssessment inserts an assessment for a child of the given age
// and returns its ID and access key.
func CreateTestAssessment(t *testing.T, conn *sql.DB, cfg cliparse.Config, age int) (assessmentID, accessKey string) {
	t.Helper()

	group, err := risk.AgeGroupFor(age)
	if err != nil {
		t.Fatalf("Invalid test age %d: %v", age, err)
	}

	assessmentID, _ = auth.GenerateID(16)
	accessKey = auth.GenerateAccessKey(assessmentID, cfg.AccessKeySalt)

	err = store.New(conn, "sqlite").Create(context.Background(), store.Assessment{
		ID:        assessmentID,
		FirstName: "Test",
		LastName:  "Child",
		Age:       age,
		Sex:       "female",
		AgeGroup:  string(group),
		StartedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test assessment: %v", err)
	}

	return assessmentID, accessKey
}

// SaveTestResult stores a sub-test payload for an assessment
func SaveTestResult(t *testing.T, conn *sql.DB, assessmentID string, test risk.TestID, payload string) {
	t.Helper()

	_, err := store.New(conn, "sqlite").UpsertResult(context.Background(), assessmentID, test, json.RawMessage(payload), time.Now())
	if err != nil {
		t.Fatalf("Failed to save test result: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
