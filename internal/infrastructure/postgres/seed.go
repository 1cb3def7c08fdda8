package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
)

// SeedRepositories repositórios sobre q no formato esperado pelo seed.
func SeedRepositories(q Querier) seed.Repositories {
	return seed.Repositories{
		References:  NewReferenceRepository(q),
		Shipments:   NewShipmentRepository(q),
		History:     NewStatusHistoryRepository(q),
		Invoices:    NewInvoiceRepository(q),
		Admissions:  NewAdmissionRepository(q),
		Withdrawals: NewWithdrawalRepository(q),
	}
}

// Seed carrega os dados de demonstração numa única transação.
// Devolve false quando já estavam carregados.
func Seed(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var loaded bool
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var err error
		loaded, err = seed.Load(ctx, SeedRepositories(tx))
		return err
	})
	return loaded, err
}
