package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// versionTable guarda a versão corrente do schema (controlada pelo tern).
const versionTable = "schema_version"

// Migrations devolve os arquivos NNN_nome.sql embutidos no binário.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrationFiles, "migrations")
}

// Migrate leva o schema até a última migração embutida. Cada arquivo roda na
// sua própria transação e o tern segura um advisory lock durante a execução.
// Devolve os nomes aplicados nesta execução.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	files, err := Migrations()
	if err != nil {
		return nil, err
	}
	if err := m.LoadMigrations(files); err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var applied []string
	m.OnStart = func(_ int32, name, direction, _ string) {
		if direction == "up" {
			applied = append(applied, name)
		}
	}
	if err := m.Migrate(ctx); err != nil {
		return applied, fmt.Errorf("migrate: %w", err)
	}
	return applied, nil
}
