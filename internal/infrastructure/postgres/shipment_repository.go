package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo embarques sobre PostgreSQL (usável com pool ou tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository constrói o adaptador. Aceita pool ou tx.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// O nome do exportador vem do cadastro, não é gravado no embarque.
const shipmentSelect = `
	SELECT s.id, s.reference, s.import_type, s.business_unit, COALESCE(s.exporter_id, ''),
	       COALESCE(e.name, ''), s.carrier, s.freight, s.currency,
	       COALESCE(s.origin_port_id, ''), COALESCE(s.destination_port_id, ''),
	       s.expected_departure_date, s.expected_arrival_date, s.status, s.notes,
	       s.created_at, s.updated_at
	FROM shipments s
	LEFT JOIN reference_items e ON e.id = s.exporter_id`

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(
		&s.ID, &s.Reference, &s.ImportType, &s.BusinessUnit, &s.ExporterID,
		&s.ExporterName, &s.Carrier, &s.Freight, &s.Currency,
		&s.OriginPortID, &s.DestinationPortID,
		&s.ExpectedDepartureDate, &s.ExpectedArrivalDate, &s.Status, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, reference, import_type, business_unit, exporter_id, carrier, freight, currency,
			origin_port_id, destination_port_id, expected_departure_date, expected_arrival_date,
			status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Reference, s.ImportType, s.BusinessUnit, nullIfEmpty(s.ExporterID), s.Carrier, s.Freight, s.Currency,
		nullIfEmpty(s.OriginPortID), nullIfEmpty(s.DestinationPortID), s.ExpectedDepartureDate, s.ExpectedArrivalDate,
		s.Status, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referência %s já existe", domain.ErrConflict, s.Reference)
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, shipmentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "embarque", id)
	}
	return s, nil
}

func (r *ShipmentRepo) ExistsReference(ctx context.Context, reference, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shipments WHERE lower(reference) = lower($1) AND id <> $2)`,
		reference, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists shipment reference: %w", err)
	}
	return exists, nil
}

// Update grava todos os campos editáveis; status tem UpdateStatus próprio.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	query := `
		UPDATE shipments
		SET reference = $2, import_type = $3, business_unit = $4, exporter_id = $5, carrier = $6,
		    freight = $7, currency = $8, origin_port_id = $9, destination_port_id = $10,
		    expected_departure_date = $11, expected_arrival_date = $12, notes = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Reference, s.ImportType, s.BusinessUnit, nullIfEmpty(s.ExporterID), s.Carrier,
		s.Freight, s.Currency, nullIfEmpty(s.OriginPortID), nullIfEmpty(s.DestinationPortID),
		s.ExpectedDepartureDate, s.ExpectedArrivalDate, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referência %s já existe", domain.ErrConflict, s.Reference)
		}
		return fmt.Errorf("update shipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

func (r *ShipmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE shipments SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, id)
	}
	return nil
}

// Delete apaga invoices e histórico em cascata; a FK de admissions impede apagar embarque com D.A.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: embarque possui D.A. vinculada", domain.ErrConflict)
		}
		return fmt.Errorf("delete shipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ShipmentRepo) List(ctx context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.BusinessUnit != "" {
		add("s.business_unit = $%d", f.BusinessUnit)
	}
	if f.Status != "" {
		add("s.status = $%d", f.Status)
	}
	if f.ImportType != "" {
		add("s.import_type = $%d", f.ImportType)
	}
	query := shipmentSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY s.created_at DESC, s.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
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

var _ repository.StatusHistoryRepository = (*StatusHistoryRepo)(nil)

// StatusHistoryRepo histórico do kanban.
type StatusHistoryRepo struct {
	q Querier
}

func NewStatusHistoryRepository(q Querier) *StatusHistoryRepo {
	return &StatusHistoryRepo{q: q}
}

func (r *StatusHistoryRepo) Create(ctx context.Context, c *entity.StatusChange) error {
	query := `
		INSERT INTO shipment_status_history (id, shipment_id, previous_status, new_status, notes, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.ShipmentID, c.PreviousStatus, c.NewStatus, c.Notes, c.ChangedBy, c.ChangedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, c.ShipmentID)
		}
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

func (r *StatusHistoryRepo) ListByShipment(ctx context.Context, shipmentID string) ([]*entity.StatusChange, error) {
	query := `
		SELECT id, shipment_id, previous_status, new_status, notes, changed_by, changed_at
		FROM shipment_status_history WHERE shipment_id = $1
		ORDER BY changed_at DESC, id`
	rows, err := r.q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusChange
	for rows.Next() {
		var c entity.StatusChange
		if err := rows.Scan(&c.ID, &c.ShipmentID, &c.PreviousStatus, &c.NewStatus, &c.Notes, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
