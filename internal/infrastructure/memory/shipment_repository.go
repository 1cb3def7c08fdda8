package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo embarques em memória.
type ShipmentRepo struct {
	s    *Store
	inTx bool
}

// NewShipmentRepository constrói o repositório.
func NewShipmentRepository(s *Store) *ShipmentRepo {
	return &ShipmentRepo{s: s}
}

// withExporter devolve uma cópia com o nome do exportador resolvido nos cadastros.
func (d *dataset) withExporter(sh *entity.Shipment) *entity.Shipment {
	c := cloneShipment(sh)
	if ref, ok := d.references[sh.ExporterID]; ok {
		c.ExporterName = ref.Name
	}
	return c
}

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		for _, other := range d.shipments {
			if strings.EqualFold(other.Reference, sh.Reference) {
				return fmt.Errorf("%w: referência %s já existe", domain.ErrConflict, sh.Reference)
			}
		}
		d.shipments[sh.ID] = cloneShipment(sh)
		d.track(sh.ID)
		return nil
	})
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	var out *entity.Shipment
	err := r.s.read(func(d *dataset) error {
		sh, ok := d.shipments[id]
		if !ok {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, id)
		}
		out = d.withExporter(sh)
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) ExistsReference(_ context.Context, reference, excludeID string) (bool, error) {
	var exists bool
	err := r.s.read(func(d *dataset) error {
		for id, sh := range d.shipments {
			if id != excludeID && strings.EqualFold(sh.Reference, reference) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *ShipmentRepo) Update(_ context.Context, sh *entity.Shipment) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.shipments[sh.ID]; !ok {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, sh.ID)
		}
		d.shipments[sh.ID] = cloneShipment(sh)
		return nil
	})
}

func (r *ShipmentRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		sh, ok := d.shipments[id]
		if !ok {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, id)
		}
		sh.Status = status
		sh.UpdatedAt = time.Now()
		return nil
	})
}

// Delete remove o embarque com invoices e histórico. Conflict se houver D.A. vinculada.
func (r *ShipmentRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.shipments[id]; !ok {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, id)
		}
		for _, a := range d.admissions {
			if a.ShipmentID == id {
				return fmt.Errorf("%w: embarque possui D.A. %s vinculada", domain.ErrConflict, a.DeclarationNumber)
			}
		}
		for invID, inv := range d.invoices {
			if inv.ShipmentID != id {
				continue
			}
			for itemID, it := range d.invoiceItems {
				if it.InvoiceID == invID {
					delete(d.invoiceItems, itemID)
				}
			}
			delete(d.invoices, invID)
		}
		for hID, h := range d.history {
			if h.ShipmentID == id {
				delete(d.history, hID)
			}
		}
		delete(d.shipments, id)
		return nil
	})
}

func (r *ShipmentRepo) List(_ context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.s.read(func(d *dataset) error {
		for _, sh := range d.shipments {
			if f.BusinessUnit != "" && sh.BusinessUnit != f.BusinessUnit {
				continue
			}
			if f.Status != "" && sh.Status != f.Status {
				continue
			}
			if f.ImportType != "" && sh.ImportType != f.ImportType {
				continue
			}
			out = append(out, d.withExporter(sh))
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return d.order[out[i].ID] > d.order[out[j].ID]
		})
		return nil
	})
	return out, err
}

var _ repository.StatusHistoryRepository = (*StatusHistoryRepo)(nil)

// StatusHistoryRepo histórico do kanban em memória.
type StatusHistoryRepo struct {
	s    *Store
	inTx bool
}

// NewStatusHistoryRepository constrói o repositório.
func NewStatusHistoryRepository(s *Store) *StatusHistoryRepo {
	return &StatusHistoryRepo{s: s}
}

func (r *StatusHistoryRepo) Create(_ context.Context, c *entity.StatusChange) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		h := *c
		d.history[c.ID] = &h
		d.track(c.ID)
		return nil
	})
}

// ListByShipment mais recente primeiro.
func (r *StatusHistoryRepo) ListByShipment(_ context.Context, shipmentID string) ([]*entity.StatusChange, error) {
	var out []*entity.StatusChange
	err := r.s.read(func(d *dataset) error {
		var ids []string
		for id, h := range d.history {
			if h.ShipmentID == shipmentID {
				ids = append(ids, id)
			}
		}
		d.sortByOrder(ids, true)
		for _, id := range ids {
			h := *d.history[id]
			out = append(out, &h)
		}
		return nil
	})
	return out, err
}
