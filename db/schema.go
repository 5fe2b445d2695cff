// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and syntax shared by PostgreSQL and SQLite.
// Timestamps are always written by the application in UTC.
const schema = `
-- Assessments
CREATE TABLE IF NOT EXISTS assessment (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    age INTEGER NOT NULL CHECK (age >= 3 AND age <= 12),
    sex TEXT NOT NULL DEFAULT '',
    age_group TEXT NOT NULL CHECK (age_group IN ('3-5', '6-8', '9-12')),
    started_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assessment_started_at ON assessment(started_at);

-- Sub-test results, one row per test per assessment
CREATE TABLE IF NOT EXISTS assessment_result (
    assessment_id TEXT NOT NULL REFERENCES assessment(id) ON DELETE CASCADE,
    test_type TEXT NOT NULL,
    payload TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL,
    PRIMARY KEY (assessment_id, test_type)
);

CREATE INDEX IF NOT EXISTS idx_assessment_result_assessment_id ON assessment_result(assessment_id);
`
