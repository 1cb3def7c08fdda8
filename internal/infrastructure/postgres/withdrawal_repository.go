package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo retiradas e suas linhas.
type WithdrawalRepo struct {
	q Querier
}

func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO withdrawals (id, admission_id, document_number, withdrawn_at, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.AdmissionID, w.DocumentNumber, w.WithdrawnAt, w.Notes, w.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	for i, it := range w.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO withdrawal_items (id, withdrawal_id, position, balance_item_id, product_code, quantity, net_weight, value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, w.ID, i+1, it.BalanceItemID, it.ProductCode, it.Quantity, it.NetWeight, it.Value,
		)
		if err != nil {
			return fmt.Errorf("insert withdrawal item: %w", err)
		}
	}
	return nil
}

func (r *WithdrawalRepo) GetByID(ctx context.Context, id string) (*entity.Withdrawal, error) {
	var w entity.Withdrawal
	err := r.q.QueryRow(ctx, `
		SELECT id, admission_id, document_number, withdrawn_at, notes, created_by
		FROM withdrawals WHERE id = $1`, id,
	).Scan(&w.ID, &w.AdmissionID, &w.DocumentNumber, &w.WithdrawnAt, &w.Notes, &w.CreatedBy)
	if err != nil {
		return nil, notFound(err, "retirada", id)
	}
	if err := r.attachItems(ctx, []*entity.Withdrawal{&w}); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepo) ListByAdmission(ctx context.Context, admissionID string) ([]*entity.Withdrawal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, admission_id, document_number, withdrawn_at, notes, created_by
		FROM withdrawals WHERE admission_id = $1
		ORDER BY withdrawn_at DESC, seq DESC`, admissionID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Withdrawal, error) {
		var w entity.Withdrawal
		err := row.Scan(&w.ID, &w.AdmissionID, &w.DocumentNumber, &w.WithdrawnAt, &w.Notes, &w.CreatedBy)
		return &w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan withdrawal: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *WithdrawalRepo) attachItems(ctx context.Context, list []*entity.Withdrawal) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Withdrawal, len(list))
	for i, w := range list {
		ids[i] = w.ID
		byID[w.ID] = w
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, withdrawal_id, balance_item_id, product_code, quantity, net_weight, value
		FROM withdrawal_items WHERE withdrawal_id = ANY($1)
		ORDER BY withdrawal_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list withdrawal items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.WithdrawalItem
		if err := rows.Scan(&it.ID, &it.WithdrawalID, &it.BalanceItemID, &it.ProductCode,
			&it.Quantity, &it.NetWeight, &it.Value); err != nil {
			return fmt.Errorf("scan withdrawal item: %w", err)
		}
		w := byID[it.WithdrawalID]
		w.Items = append(w.Items, &it)
	}
	return rows.Err()
}
