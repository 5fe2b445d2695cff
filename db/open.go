// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DriverName maps a configured database type to its database/sql driver.
func DriverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite, "sqlite3":
		return "sqlite", nil
	case TypePostgres, "postgresql":
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database type %q (want sqlite or postgres)", dbType)
}

// Open connects to the configured database and verifies the connection.
// It returns the driver name alongside the handle.
func Open(dbType, url string) (*sql.DB, string, error) {
	driver, err := DriverName(dbType)
	if err != nil {
		return nil, "", err
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, "", fmt.Errorf("database connection failed: %w", err)
	}

	// SQLite allows a single writer; serialize access through one connection.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, "", fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("database ping failed: %w", err)
	}
	return conn, driver, nil
}
