package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.AdmissionRepository = (*AdmissionRepo)(nil)

// AdmissionRepo D.A. e itens de saldo em memória.
type AdmissionRepo struct {
	s    *Store
	inTx bool
}

// NewAdmissionRepository constrói o repositório.
func NewAdmissionRepository(s *Store) *AdmissionRepo {
	return &AdmissionRepo{s: s}
}

// withBalance monta a cópia da D.A. com itens ordenados por Position.
func (d *dataset) withBalance(a *entity.Admission) *entity.Admission {
	c := cloneAdmissionHeader(a)
	for _, it := range d.balanceItems {
		if it.AdmissionID == a.ID {
			item := *it
			c.Items = append(c.Items, &item)
		}
	}
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].Position < c.Items[j].Position })
	return c
}

func (r *AdmissionRepo) Create(_ context.Context, a *entity.Admission) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		for _, other := range d.admissions {
			if strings.EqualFold(other.DeclarationNumber, a.DeclarationNumber) {
				return fmt.Errorf("%w: número da D.A. %s já existe", domain.ErrConflict, a.DeclarationNumber)
			}
		}
		d.admissions[a.ID] = cloneAdmissionHeader(a)
		d.track(a.ID)
		for _, it := range a.Items {
			item := *it
			d.balanceItems[it.ID] = &item
			d.track(it.ID)
		}
		return nil
	})
}

func (r *AdmissionRepo) GetByID(_ context.Context, id string) (*entity.Admission, error) {
	var out *entity.Admission
	err := r.s.read(func(d *dataset) error {
		a, ok := d.admissions[id]
		if !ok {
			return fmt.Errorf("%w: entreposto %s", domain.ErrNotFound, id)
		}
		out = d.withBalance(a)
		return nil
	})
	return out, err
}

// GetForUpdate é GetByID: o TxRunner já serializa as transações.
func (r *AdmissionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Admission, error) {
	return r.GetByID(ctx, id)
}

func (r *AdmissionRepo) ExistsDeclarationNumber(_ context.Context, number string) (bool, error) {
	var exists bool
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.admissions {
			if strings.EqualFold(a.DeclarationNumber, number) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

// List mais recentes primeiro.
func (r *AdmissionRepo) List(_ context.Context, f repository.AdmissionFilter) ([]*entity.Admission, error) {
	var out []*entity.Admission
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.admissions {
			if f.WarehouseType != "" && a.WarehouseType != f.WarehouseType {
				continue
			}
			if f.ShipmentID != "" && a.ShipmentID != f.ShipmentID {
				continue
			}
			out = append(out, d.withBalance(a))
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

func (r *AdmissionRepo) UpdateBalance(_ context.Context, a *entity.Admission) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		stored, ok := d.admissions[a.ID]
		if !ok {
			return fmt.Errorf("%w: entreposto %s", domain.ErrNotFound, a.ID)
		}
		for _, it := range a.Items {
			if cur, ok := d.balanceItems[it.ID]; !ok || cur.AdmissionID != a.ID {
				return fmt.Errorf("%w: item de saldo %s", domain.ErrNotFound, it.ID)
			}
		}
		stored.Status = a.Status
		stored.TotalWithdrawals = a.TotalWithdrawals
		stored.UpdatedAt = a.UpdatedAt
		for _, it := range a.Items {
			cur := d.balanceItems[it.ID]
			cur.QuantityWithdrawn = it.QuantityWithdrawn
			cur.QuantityAvailable = it.QuantityAvailable
			cur.NetWeightWithdrawn = it.NetWeightWithdrawn
			cur.NetWeightAvailable = it.NetWeightAvailable
			cur.ValueAvailable = it.ValueAvailable
		}
		return nil
	})
}
