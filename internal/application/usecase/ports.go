package usecase

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

// ShipmentTxRunner transação com embarque e histórico (mudança de status do kanban).
type ShipmentTxRunner interface {
	RunShipment(ctx context.Context, fn func(
		shipmentRepo repository.ShipmentRepository,
		historyRepo repository.StatusHistoryRepository,
	) error) error
}

// InvoiceTxRunner transação com invoice e itens.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}
