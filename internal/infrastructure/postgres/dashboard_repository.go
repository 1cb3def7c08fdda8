package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados read-only do painel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository constrói o adaptador. Aceita pool ou tx.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) ShipmentTotals(ctx context.Context, today time.Time) (repository.ShipmentTotals, error) {
	var out repository.ShipmentTotals
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE status NOT IN ($2, $3)),
		       count(*) FILTER (WHERE expected_arrival_date < $1 AND status <> $3),
		       COALESCE(sum(freight), 0)
		FROM shipments`
	err := r.q.QueryRow(ctx, query, today, entity.ShipmentStatusPreShipment, entity.ShipmentStatusDelivered).
		Scan(&out.Total, &out.InProgress, &out.Delayed, &out.TotalFreight)
	if err != nil {
		return out, fmt.Errorf("shipment totals: %w", err)
	}
	return out, nil
}

func (r *DashboardRepo) CountShipmentsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM shipments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count shipments by status: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// AdmissionTotals resolve VENCIDO pela data, igual à leitura de uma D.A. individual.
func (r *DashboardRepo) AdmissionTotals(ctx context.Context, today time.Time) (repository.AdmissionTotals, error) {
	var out repository.AdmissionTotals
	query := `
		SELECT count(*) FILTER (WHERE status = $2 AND expiry_date >= $1),
		       count(*) FILTER (WHERE status = $3 OR (status = $2 AND expiry_date < $1)),
		       count(*) FILTER (WHERE status = $4),
		       (SELECT COALESCE(sum(value_available), 0) FROM balance_items)
		FROM admissions`
	err := r.q.QueryRow(ctx, query, today,
		entity.AdmissionStatusActive, entity.AdmissionStatusExpired, entity.AdmissionStatusFinalized,
	).Scan(&out.Active, &out.Expired, &out.Finalized, &out.ValueAvailable)
	if err != nil {
		return out, fmt.Errorf("admission totals: %w", err)
	}
	return out, nil
}

func (r *DashboardRepo) ExpiringAdmissions(ctx context.Context, from, until time.Time) ([]*entity.Admission, error) {
	query := admissionSelect + `
		WHERE a.status = $1 AND a.expiry_date BETWEEN $2 AND $3
		ORDER BY a.expiry_date, a.id`
	list, err := NewAdmissionRepository(r.q).list(ctx, query, entity.AdmissionStatusActive, from, until)
	if err != nil {
		return nil, fmt.Errorf("expiring admissions: %w", err)
	}
	return list, nil
}

func (r *DashboardRepo) ArrivingShipments(ctx context.Context, from, until time.Time) ([]*entity.Shipment, error) {
	query := shipmentSelect + `
		WHERE s.status = ANY($1) AND s.expected_arrival_date BETWEEN $2 AND $3
		ORDER BY s.expected_arrival_date, s.id`
	awaiting := []string{
		entity.ShipmentStatusPreShipment, entity.ShipmentStatusLoadedOnBoard, entity.ShipmentStatusInTransit,
	}
	rows, err := r.q.Query(ctx, query, awaiting, from, until)
	if err != nil {
		return nil, fmt.Errorf("arriving shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
