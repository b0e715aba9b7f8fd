//go:build !sqlite_cgo

package sqlite

// Pure Go driver, no C toolchain needed. Build with -tags sqlite_cgo to use
// github.com/mattn/go-sqlite3 instead.

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver in use.
	DriverName = "sqlite"

	// BuildMode describes the current build configuration.
	BuildMode = "purego"
)
