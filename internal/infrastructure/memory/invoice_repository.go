package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo invoices e itens em memória.
type InvoiceRepo struct {
	s    *Store
	inTx bool
}

// NewInvoiceRepository constrói o repositório.
func NewInvoiceRepository(s *Store) *InvoiceRepo {
	return &InvoiceRepo{s: s}
}

// withItems monta a cópia da invoice com itens em ordem de inserção.
func (d *dataset) withItems(inv *entity.Invoice) *entity.Invoice {
	c := cloneInvoiceHeader(inv)
	c.Items = d.itemsOf(inv.ID)
	return c
}

func (d *dataset) itemsOf(invoiceID string) []*entity.InvoiceItem {
	var ids []string
	for id, it := range d.invoiceItems {
		if it.InvoiceID == invoiceID {
			ids = append(ids, id)
		}
	}
	d.sortByOrder(ids, false)
	items := make([]*entity.InvoiceItem, 0, len(ids))
	for _, id := range ids {
		it := *d.invoiceItems[id]
		items = append(items, &it)
	}
	return items
}

// Create grava a invoice e os Items informados.
func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.shipments[inv.ShipmentID]; !ok {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, inv.ShipmentID)
		}
		for _, other := range d.invoices {
			if other.ShipmentID == inv.ShipmentID && strings.EqualFold(other.Number, inv.Number) {
				return fmt.Errorf("%w: invoice %s já existe no embarque", domain.ErrConflict, inv.Number)
			}
		}
		d.invoices[inv.ID] = cloneInvoiceHeader(inv)
		d.track(inv.ID)
		for _, it := range inv.Items {
			item := *it
			d.invoiceItems[it.ID] = &item
			d.track(it.ID)
		}
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.read(func(d *dataset) error {
		inv, ok := d.invoices[id]
		if !ok {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, id)
		}
		out = d.withItems(inv)
		return nil
	})
	return out, err
}

// Update altera só o cabeçalho.
func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.invoices[inv.ID]; !ok {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, inv.ID)
		}
		d.invoices[inv.ID] = cloneInvoiceHeader(inv)
		return nil
	})
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.invoices[id]; !ok {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, id)
		}
		for itemID, it := range d.invoiceItems {
			if it.InvoiceID == id {
				delete(d.invoiceItems, itemID)
			}
		}
		delete(d.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) ListByShipment(_ context.Context, shipmentID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.s.read(func(d *dataset) error {
		var ids []string
		for id, inv := range d.invoices {
			if inv.ShipmentID == shipmentID {
				ids = append(ids, id)
			}
		}
		d.sortByOrder(ids, false)
		for _, id := range ids {
			out = append(out, d.withItems(d.invoices[id]))
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) ExistsNumber(_ context.Context, shipmentID, number, excludeID string) (bool, error) {
	var exists bool
	err := r.s.read(func(d *dataset) error {
		for id, inv := range d.invoices {
			if id != excludeID && inv.ShipmentID == shipmentID && strings.EqualFold(inv.Number, number) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *InvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.invoices[item.InvoiceID]; !ok {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, item.InvoiceID)
		}
		it := *item
		d.invoiceItems[item.ID] = &it
		d.track(item.ID)
		return nil
	})
}

func (r *InvoiceRepo) GetItem(_ context.Context, id string) (*entity.InvoiceItem, error) {
	var out *entity.InvoiceItem
	err := r.s.read(func(d *dataset) error {
		it, ok := d.invoiceItems[id]
		if !ok {
			return fmt.Errorf("%w: item de invoice %s", domain.ErrNotFound, id)
		}
		c := *it
		out = &c
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) UpdateItem(_ context.Context, item *entity.InvoiceItem) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.invoiceItems[item.ID]; !ok {
			return fmt.Errorf("%w: item de invoice %s", domain.ErrNotFound, item.ID)
		}
		it := *item
		d.invoiceItems[item.ID] = &it
		return nil
	})
}

func (r *InvoiceRepo) DeleteItem(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.invoiceItems[id]; !ok {
			return fmt.Errorf("%w: item de invoice %s", domain.ErrNotFound, id)
		}
		delete(d.invoiceItems, id)
		return nil
	})
}

func (r *InvoiceRepo) ListItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	err := r.s.read(func(d *dataset) error {
		if _, ok := d.invoices[invoiceID]; !ok {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, invoiceID)
		}
		out = d.itemsOf(invoiceID)
		return nil
	})
	return out, err
}
