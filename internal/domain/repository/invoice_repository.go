package repository

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// InvoiceRepository define o porto de persistência para invoices comerciais e seus itens.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	// GetByID devolve a invoice com Items.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// ListByShipment devolve as invoices do embarque com Items, em ordem de criação.
	ListByShipment(ctx context.Context, shipmentID string) ([]*entity.Invoice, error)
	ExistsNumber(ctx context.Context, shipmentID, number, excludeID string) (bool, error)

	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetItem(ctx context.Context, id string) (*entity.InvoiceItem, error)
	UpdateItem(ctx context.Context, item *entity.InvoiceItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
}
