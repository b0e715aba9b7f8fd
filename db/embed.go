// Package db provides embedded database schema files.
package db

import _ "embed"

// SQLiteSchema contains the DDL for the local SQLite store.
//
//go:embed migrations/001_sqlite.sql
var SQLiteSchema string

// PostgresSchema contains the DDL for the PostgreSQL store.
//
//go:embed migrations/001_postgres.sql
var PostgresSchema string
