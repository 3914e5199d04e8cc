package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestEmbeddedMigrations_Paired(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups[strings.TrimSuffix(f, ".up.sql")] = true
		case strings.HasSuffix(f, ".down.sql"):
			downs[strings.TrimSuffix(f, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", f)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrations_LedgerConstraints(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000001_ledger.up.sql")
	require.NoError(t, err)
	sql := string(data)

	assert.Contains(t, sql, "CHECK (balance >= 0)")
	assert.Contains(t, sql, "idempotency_key    TEXT        NOT NULL UNIQUE")
	assert.Contains(t, sql, "reversal_of        UUID UNIQUE")
	assert.Contains(t, sql, "external_reference TEXT UNIQUE")
}
