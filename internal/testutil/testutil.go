// Package testutil provides a migrated in-memory database for package tests.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emilianohg/staffboard/internal/db"
)

// NewDB returns a fresh, fully migrated in-memory database closed at test end.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(conn))
	return conn
}

// Date parses a YYYY-MM-DD literal into a pointer, failing the test on error.
func Date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

// ID returns a pointer to id, for nullable person references.
func ID(id int64) *int64 {
	return &id
}
