// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/dyscover/risk"
)

var (
	// ErrNotFound is returned when an assessment id is unknown.
	ErrNotFound = errors.New("assessment not found")
	// ErrInvalidPayload is returned when a result payload is not a JSON object.
	ErrInvalidPayload = errors.New("result payload must be a JSON object")
)

// Assessment is one screening session.
type Assessment struct {
	ID          string     `db:"id" json:"id"`
	FirstName   string     `db:"first_name" json:"first"`
	LastName    string     `db:"last_name" json:"last"`
	Age         int        `db:"age" json:"age"`
	Sex         string     `db:"sex" json:"sex"`
	AgeGroup    string     `db:"age_group" json:"age_group"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// Demographics returns the child's details in scoring form.
func (a Assessment) Demographics() risk.Demographics {
	return risk.Demographics{First: a.FirstName, Last: a.LastName, Age: a.Age, Sex: a.Sex}
}

// Record is an assessment together with its raw results.
type Record struct {
	Assessment
	Results map[string]json.RawMessage
}

// Store persists assessments and their sub-test results.
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection. driverName is the database/sql driver the
// connection was opened with.
func New(db *sql.DB, driverName string) *Store {
	return &Store{db: sqlx.NewDb(db, driverName)}
}

// Create inserts a new assessment.
func (s *Store) Create(ctx context.Context, a Assessment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessment (id, first_name, last_name, age, sex, age_group, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.FirstName, a.LastName, a.Age, a.Sex, a.AgeGroup, a.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// Get loads one assessment.
func (s *Store) Get(ctx context.Context, id string) (*Assessment, error) {
	var a Assessment
	err := s.db.GetContext(ctx, &a, `
		SELECT id, first_name, last_name, age, sex, age_group, started_at, completed_at
		FROM assessment WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	return &a, nil
}

// UpsertResult stores the payload for a sub-test, replacing any earlier
// result for the same test. The payload must be a JSON object; savedAt is
// written into it.
func (s *Store) UpsertResult(ctx context.Context, id string, test risk.TestID, payload json.RawMessage, savedAt time.Time) (json.RawMessage, error) {
	savedAt = savedAt.UTC()
	stamped, err := stampSavedAt(payload, savedAt)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM assessment WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO assessment_result (assessment_id, test_type, payload, saved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (assessment_id, test_type)
		DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, id, string(test), string(stamped), savedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return stamped, nil
}

type resultRow struct {
	AssessmentID string `db:"assessment_id"`
	TestType     string `db:"test_type"`
	Payload      string `db:"payload"`
}

// Results returns the stored payloads keyed by test type.
func (s *Store) Results(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var rows []resultRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT assessment_id, test_type, payload
		FROM assessment_result WHERE assessment_id = $1
		ORDER BY test_type
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	out := make(map[string]json.RawMessage, len(rows))
	for _, r := range rows {
		out[r.TestType] = json.RawMessage(r.Payload)
	}
	return out, nil
}

// Complete marks an assessment finished. Completing twice keeps the first
// completion time.
func (s *Store) Complete(ctx context.Context, id string, at time.Time) (time.Time, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if a.CompletedAt != nil {
		return *a.CompletedAt, nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE assessment SET completed_at = $1
		WHERE id = $2 AND completed_at IS NULL
	`, at.UTC(), id)
	if err != nil {
		return time.Time{}, fmt.Errorf("update assessment: %w", err)
	}

	// A concurrent completion may have won; report what is stored.
	a, err = s.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if a.CompletedAt == nil {
		return time.Time{}, fmt.Errorf("assessment %s not marked complete", id)
	}
	return *a.CompletedAt, nil
}

// ListForExport returns every assessment with its results, oldest first.
func (s *Store) ListForExport(ctx context.Context) ([]Record, error) {
	var assessments []Assessment
	err := s.db.SelectContext(ctx, &assessments, `
		SELECT id, first_name, last_name, age, sex, age_group, started_at, completed_at
		FROM assessment ORDER BY started_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}

	var rows []resultRow
	err = s.db.SelectContext(ctx, &rows, `
		SELECT assessment_id, test_type, payload FROM assessment_result
	`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	byID := make(map[string]map[string]json.RawMessage, len(assessments))
	for _, r := range rows {
		if byID[r.AssessmentID] == nil {
			byID[r.AssessmentID] = make(map[string]json.RawMessage)
		}
		byID[r.AssessmentID][r.TestType] = json.RawMessage(r.Payload)
	}

	records := make([]Record, 0, len(assessments))
	for _, a := range assessments {
		results := byID[a.ID]
		if results == nil {
			results = map[string]json.RawMessage{}
		}
		records = append(records, Record{Assessment: a, Results: results})
	}
	return records, nil
}

func stampSavedAt(payload json.RawMessage, at time.Time) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return nil, ErrInvalidPayload
	}
	ts, err := json.Marshal(at.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	obj["savedAt"] = ts
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return out, nil
}
