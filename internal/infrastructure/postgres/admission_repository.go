package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.AdmissionRepository = (*AdmissionRepo)(nil)

// AdmissionRepo D.A. e itens de saldo (usável com pool ou tx).
type AdmissionRepo struct {
	q Querier
}

// NewAdmissionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAdmissionRepository(q Querier) *AdmissionRepo {
	return &AdmissionRepo{q: q}
}

const admissionSelect = `
	SELECT a.id, a.declaration_number, a.shipment_id, s.reference, COALESCE(e.name, ''),
	       a.warehouse_type, a.registration_date, a.expiry_date, a.status, a.total_withdrawals,
	       a.currency, a.total_merchandise_value, a.notes, a.created_by, a.created_at, a.updated_at
	FROM admissions a
	JOIN shipments s ON s.id = a.shipment_id
	LEFT JOIN reference_items e ON e.id = s.exporter_id`

func scanAdmission(row pgx.Row) (*entity.Admission, error) {
	var a entity.Admission
	err := row.Scan(
		&a.ID, &a.DeclarationNumber, &a.ShipmentID, &a.ShipmentReference, &a.ExporterName,
		&a.WarehouseType, &a.RegistrationDate, &a.ExpiryDate, &a.Status, &a.TotalWithdrawals,
		&a.Currency, &a.TotalMerchandiseValue, &a.Notes, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const balanceItemColumns = `id, admission_id, position, COALESCE(invoice_id, ''), invoice_number, product_code,
	description, ncm, batch, unit,
	quantity_original, quantity_withdrawn, quantity_available,
	net_weight_original, net_weight_withdrawn, net_weight_available,
	unit_value, value_available`

func scanBalanceItem(row pgx.Row) (*entity.BalanceItem, error) {
	var it entity.BalanceItem
	err := row.Scan(
		&it.ID, &it.AdmissionID, &it.Position, &it.InvoiceID, &it.InvoiceNumber, &it.ProductCode,
		&it.Description, &it.NCM, &it.Batch, &it.Unit,
		&it.QuantityOriginal, &it.QuantityWithdrawn, &it.QuantityAvailable,
		&it.NetWeightOriginal, &it.NetWeightWithdrawn, &it.NetWeightAvailable,
		&it.UnitValue, &it.ValueAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create grava a D.A. e os itens de saldo. Chamar dentro do TxRunner.
func (r *AdmissionRepo) Create(ctx context.Context, a *entity.Admission) error {
	query := `
		INSERT INTO admissions (id, declaration_number, shipment_id, warehouse_type, registration_date, expiry_date,
			status, total_withdrawals, currency, total_merchandise_value, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.DeclarationNumber, a.ShipmentID, a.WarehouseType, a.RegistrationDate, a.ExpiryDate,
		a.Status, a.TotalWithdrawals, a.Currency, a.TotalMerchandiseValue, a.Notes, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número da D.A. %s já existe", domain.ErrConflict, a.DeclarationNumber)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, a.ShipmentID)
		}
		return fmt.Errorf("insert admission: %w", err)
	}

	itemQuery := `
		INSERT INTO balance_items (id, admission_id, position, invoice_id, invoice_number, product_code,
			description, ncm, batch, unit,
			quantity_original, quantity_withdrawn, quantity_available,
			net_weight_original, net_weight_withdrawn, net_weight_available,
			unit_value, value_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for _, it := range a.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, a.ID, it.Position, nullIfEmpty(it.InvoiceID), it.InvoiceNumber, it.ProductCode,
			it.Description, it.NCM, it.Batch, it.Unit,
			it.QuantityOriginal, it.QuantityWithdrawn, it.QuantityAvailable,
			it.NetWeightOriginal, it.NetWeightWithdrawn, it.NetWeightAvailable,
			it.UnitValue, it.ValueAvailable,
		)
		if err != nil {
			return fmt.Errorf("insert balance item: %w", err)
		}
	}
	return nil
}

func (r *AdmissionRepo) GetByID(ctx context.Context, id string) (*entity.Admission, error) {
	return r.get(ctx, admissionSelect+` WHERE a.id = $1`, id)
}

// GetForUpdate trava a linha da D.A. até o commit; retiradas concorrentes esperam aqui.
func (r *AdmissionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Admission, error) {
	return r.get(ctx, admissionSelect+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

func (r *AdmissionRepo) get(ctx context.Context, query, id string) (*entity.Admission, error) {
	a, err := scanAdmission(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "entreposto", id)
	}
	if err := r.attachItems(ctx, []*entity.Admission{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// attachItems carrega os itens de todas as D.A. numa consulta só.
func (r *AdmissionRepo) attachItems(ctx context.Context, list []*entity.Admission) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Admission, len(list))
	for i, a := range list {
		ids[i] = a.ID
		byID[a.ID] = a
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+balanceItemColumns+` FROM balance_items WHERE admission_id = ANY($1) ORDER BY admission_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list balance items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanBalanceItem(rows)
		if err != nil {
			return fmt.Errorf("scan balance item: %w", err)
		}
		a := byID[it.AdmissionID]
		a.Items = append(a.Items, it)
	}
	return rows.Err()
}

func (r *AdmissionRepo) ExistsDeclarationNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admissions WHERE lower(declaration_number) = lower($1))`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists declaration number: %w", err)
	}
	return exists, nil
}

func (r *AdmissionRepo) List(ctx context.Context, f repository.AdmissionFilter) ([]*entity.Admission, error) {
	var (
		where []string
		args  []any
	)
	if f.WarehouseType != "" {
		args = append(args, f.WarehouseType)
		where = append(where, fmt.Sprintf("a.warehouse_type = $%d", len(args)))
	}
	if f.ShipmentID != "" {
		args = append(args, f.ShipmentID)
		where = append(where, fmt.Sprintf("a.shipment_id = $%d", len(args)))
	}
	query := admissionSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY a.created_at DESC, a.id`
	return r.list(ctx, query, args...)
}

// list executa uma consulta sobre admissionSelect e anexa os itens.
func (r *AdmissionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Admission, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	var list []*entity.Admission
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan admission: %w", err)
		}
		list = append(list, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBalance grava status, contador e os campos móveis dos itens informados.
func (r *AdmissionRepo) UpdateBalance(ctx context.Context, a *entity.Admission) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE admissions SET status = $2, total_withdrawals = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Status, a.TotalWithdrawals, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update admission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: entreposto %s", domain.ErrNotFound, a.ID)
	}
	itemQuery := `
		UPDATE balance_items
		SET quantity_withdrawn = $3, quantity_available = $4,
		    net_weight_withdrawn = $5, net_weight_available = $6, value_available = $7
		WHERE id = $1 AND admission_id = $2`
	for _, it := range a.Items {
		cmd, err := r.q.Exec(ctx, itemQuery,
			it.ID, a.ID, it.QuantityWithdrawn, it.QuantityAvailable,
			it.NetWeightWithdrawn, it.NetWeightAvailable, it.ValueAvailable,
		)
		if err != nil {
			return fmt.Errorf("update balance item: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return fmt.Errorf("%w: item de saldo %s", domain.ErrNotFound, it.ID)
		}
	}
	return nil
}
