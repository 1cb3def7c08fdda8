package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
	"github.com/jhoicas/biocol-import-api/pkg/config"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

type txRunner interface {
	entreposto.TxRunner
	usecase.ShipmentTxRunner
	usecase.InvoiceTxRunner
}

// storage repositórios do driver escolhido em STORAGE_DRIVER.
type storage struct {
	tx          txRunner
	admissions  repository.AdmissionRepository
	withdrawals repository.WithdrawalRepository
	shipments   repository.ShipmentRepository
	history     repository.StatusHistoryRepository
	invoices    repository.InvoiceRepository
	references  repository.ReferenceRepository
	dashboard   repository.DashboardRepository
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		if cfg.Storage.MemorySeed {
			if _, err := seed.Load(ctx, memory.SeedRepositories(store)); err != nil {
				return nil, fmt.Errorf("carregar dados de demonstração: %w", err)
			}
			log.Info().Msg("store em memória com dados de demonstração")
		}
		return &storage{
			tx:          memory.NewTxRunner(store),
			admissions:  memory.NewAdmissionRepository(store),
			withdrawals: memory.NewWithdrawalRepository(store),
			shipments:   memory.NewShipmentRepository(store),
			history:     memory.NewStatusHistoryRepository(store),
			invoices:    memory.NewInvoiceRepository(store),
			references:  memory.NewReferenceRepository(store),
			dashboard:   memory.NewDashboardRepository(store),
			close:       func() {},
		}, nil

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexão com PostgreSQL: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrações: %w", err)
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migrações aplicadas")
		}
		return &storage{
			tx:          postgres.NewTxRunner(pool),
			admissions:  postgres.NewAdmissionRepository(pool),
			withdrawals: postgres.NewWithdrawalRepository(pool),
			shipments:   postgres.NewShipmentRepository(pool),
			history:     postgres.NewStatusHistoryRepository(pool),
			invoices:    postgres.NewInvoiceRepository(pool),
			references:  postgres.NewReferenceRepository(pool),
			dashboard:   postgres.NewDashboardRepository(pool),
			close:       pool.Close,
		}, nil
	}
}
