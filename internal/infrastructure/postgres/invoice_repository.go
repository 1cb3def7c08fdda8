package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementação de InvoiceRepository (usável com pool ou tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste o cabeçalho e as linhas. Chamar dentro de RunInvoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, shipment_id, number, type, issue_date, currency, total_value, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ShipmentID, inv.Number, inv.Type, inv.IssueDate, inv.Currency,
		inv.TotalValue, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s já existe no embarque", domain.ErrConflict, inv.Number)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: embarque %s", domain.ErrNotFound, inv.ShipmentID)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range inv.Items {
		if err := r.CreateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

const invoiceColumns = `id, shipment_id, number, type, issue_date, currency, total_value, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.ShipmentID, &inv.Number, &inv.Type, &inv.IssueDate, &inv.Currency,
		&inv.TotalValue, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "invoice", id)
	}
	if inv.Items, err = r.ListItems(ctx, id); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET number = $2, type = $3, issue_date = $4, currency = $5, total_value = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.Type, inv.IssueDate, inv.Currency, inv.TotalValue, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s já existe no embarque", domain.ErrConflict, inv.Number)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, inv.ID)
	}
	return nil
}

// Delete remove a invoice; itens saem em cascata.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *InvoiceRepo) ListByShipment(ctx context.Context, shipmentID string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE shipment_id = $1 ORDER BY seq`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	// itens depois de fechar rows: a mesma conexão da tx não aceita consultas concorrentes
	for _, inv := range list {
		if inv.Items, err = r.ListItems(ctx, inv.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *InvoiceRepo) ExistsNumber(ctx context.Context, shipmentID, number, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE shipment_id = $1 AND lower(number) = lower($2) AND id <> $3)`,
		shipmentID, number, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice number: %w", err)
	}
	return exists, nil
}

const invoiceItemColumns = `id, invoice_id, product_code, description, ncm, batch, unit,
	quantity, net_weight, gross_weight, unit_value, total_value, created_at`

func scanInvoiceItem(row pgx.Row) (*entity.InvoiceItem, error) {
	var it entity.InvoiceItem
	err := row.Scan(&it.ID, &it.InvoiceID, &it.ProductCode, &it.Description, &it.NCM, &it.Batch, &it.Unit,
		&it.Quantity, &it.NetWeight, &it.GrossWeight, &it.UnitValue, &it.TotalValue, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.InvoiceID, it.ProductCode, it.Description, it.NCM, it.Batch, it.Unit,
		it.Quantity, it.NetWeight, it.GrossWeight, it.UnitValue, it.TotalValue, it.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, it.InvoiceID)
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetItem(ctx context.Context, id string) (*entity.InvoiceItem, error) {
	it, err := scanInvoiceItem(r.q.QueryRow(ctx, `SELECT `+invoiceItemColumns+` FROM invoice_items WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "item de invoice", id)
	}
	return it, nil
}

func (r *InvoiceRepo) UpdateItem(ctx context.Context, it *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items
		SET product_code = $2, description = $3, ncm = $4, batch = $5, unit = $6,
		    quantity = $7, net_weight = $8, gross_weight = $9, unit_value = $10, total_value = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.ProductCode, it.Description, it.NCM, it.Batch, it.Unit,
		it.Quantity, it.NetWeight, it.GrossWeight, it.UnitValue, it.TotalValue,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: item de invoice %s", domain.ErrNotFound, it.ID)
	}
	return nil
}

func (r *InvoiceRepo) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: item de invoice %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY seq`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		it, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
