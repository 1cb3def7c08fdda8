package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/tern/v2/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert admission: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "entreposto", "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "entreposto abc")

	other := errors.New("conn reset")
	assert.Equal(t, other, notFound(other, "entreposto", "abc"))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := Migrations()
	require.NoError(t, err)

	// o tern exige sequência contínua a partir de 001
	names, err := migrate.FindMigrations(files)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])

	sql, err := fs.ReadFile(files, names[0])
	require.NoError(t, err)
	for _, table := range []string{"shipments", "invoices", "admissions", "balance_items", "withdrawals", "reference_items"} {
		assert.True(t, strings.Contains(string(sql), "CREATE TABLE IF NOT EXISTS "+table+" "), table)
	}
	assert.NotContains(t, string(sql), "{{", "migrações passam pelo text/template do tern")
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", *nullIfEmpty("x"))
}
