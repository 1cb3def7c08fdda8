package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados do painel calculados sobre o store.
type DashboardRepo struct {
	s *Store
}

// NewDashboardRepository constrói o repositório.
func NewDashboardRepository(s *Store) *DashboardRepo {
	return &DashboardRepo{s: s}
}

func (r *DashboardRepo) ShipmentTotals(_ context.Context, today time.Time) (repository.ShipmentTotals, error) {
	out := repository.ShipmentTotals{TotalFreight: decimal.Zero}
	err := r.s.read(func(d *dataset) error {
		for _, sh := range d.shipments {
			out.Total++
			out.TotalFreight = out.TotalFreight.Add(sh.Freight)
			if sh.Status != entity.ShipmentStatusPreShipment && sh.Status != entity.ShipmentStatusDelivered {
				out.InProgress++
			}
			if sh.ExpectedArrivalDate != nil && sh.ExpectedArrivalDate.Before(today) &&
				sh.Status != entity.ShipmentStatusDelivered {
				out.Delayed++
			}
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) CountShipmentsByStatus(_ context.Context) (map[string]int, error) {
	out := make(map[string]int)
	err := r.s.read(func(d *dataset) error {
		for _, sh := range d.shipments {
			out[sh.Status]++
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) AdmissionTotals(_ context.Context, today time.Time) (repository.AdmissionTotals, error) {
	out := repository.AdmissionTotals{ValueAvailable: decimal.Zero}
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.admissions {
			switch rules.ResolveStatus(a, today) {
			case entity.AdmissionStatusActive:
				out.Active++
			case entity.AdmissionStatusExpired:
				out.Expired++
			case entity.AdmissionStatusFinalized:
				out.Finalized++
			}
		}
		for _, it := range d.balanceItems {
			out.ValueAvailable = out.ValueAvailable.Add(it.ValueAvailable)
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) ExpiringAdmissions(_ context.Context, from, until time.Time) ([]*entity.Admission, error) {
	var out []*entity.Admission
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.admissions {
			if rules.ResolveStatus(a, from) != entity.AdmissionStatusActive {
				continue
			}
			if a.ExpiryDate.Before(from) || a.ExpiryDate.After(until) {
				continue
			}
			out = append(out, d.withBalance(a))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
		return nil
	})
	return out, err
}

func (r *DashboardRepo) ArrivingShipments(_ context.Context, from, until time.Time) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.s.read(func(d *dataset) error {
		for _, sh := range d.shipments {
			eta := sh.ExpectedArrivalDate
			if eta == nil || !entity.IsAwaitingArrival(sh.Status) {
				continue
			}
			if eta.Before(from) || eta.After(until) {
				continue
			}
			out = append(out, d.withExporter(sh))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ExpectedArrivalDate.Before(*out[j].ExpectedArrivalDate) })
		return nil
	})
	return out, err
}
