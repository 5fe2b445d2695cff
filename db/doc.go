// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connections

Open selects a driver from the configured database type:

	conn, driver, err := db.Open("sqlite", "file:dyscover.db")
	conn, driver, err := db.Open("postgres", "postgres://...")

SQLite uses modernc.org/sqlite (no cgo) and is limited to one open
connection. PostgreSQL uses github.com/lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - assessment: One screening session and the child's demographics
  - assessment_result: Latest result per sub-test, stored as JSON text

# Relationships

	assessment 1──* assessment_result

Results are keyed by (assessment_id, test_type); a retake overwrites the
previous row. Deleting an assessment cascades to its results.
*/
package db
