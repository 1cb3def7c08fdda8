package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

// Ensure TxRunner implements entreposto.TxRunner, usecase.ShipmentTxRunner e usecase.InvoiceTxRunner.
var (
	_ entreposto.TxRunner      = (*TxRunner)(nil)
	_ usecase.ShipmentTxRunner = (*TxRunner)(nil)
	_ usecase.InvoiceTxRunner  = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre a transação, executa fn e faz Commit ou Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transação do entreposto: criação de D.A. e retiradas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	admissionRepo repository.AdmissionRepository,
	withdrawalRepo repository.WithdrawalRepository,
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.StatusHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewAdmissionRepository(tx),
			NewWithdrawalRepository(tx),
			NewShipmentRepository(tx),
			NewStatusHistoryRepository(tx),
		)
	})
}

// RunShipment transação de mudança de status do embarque.
func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.StatusHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewShipmentRepository(tx), NewStatusHistoryRepository(tx))
	})
}

// RunInvoice transação de criação de invoice com itens.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx))
	})
}
