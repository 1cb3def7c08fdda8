package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo cadastros sobre PostgreSQL.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository constrói o adaptador. Aceita pool ou tx.
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

const referenceColumns = `id, kind, code, name, details, active, created_at, updated_at`

func (r *ReferenceRepo) Create(ctx context.Context, item *entity.ReferenceItem) error {
	query := `
		INSERT INTO reference_items (` + referenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Kind, item.Code, item.Name, item.Details, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s já cadastrado em %s", domain.ErrConflict, item.Code, item.Kind)
		}
		return fmt.Errorf("insert reference item: %w", err)
	}
	return nil
}

func (r *ReferenceRepo) GetByID(ctx context.Context, id string) (*entity.ReferenceItem, error) {
	var it entity.ReferenceItem
	err := r.q.QueryRow(ctx, `SELECT `+referenceColumns+` FROM reference_items WHERE id = $1`, id).Scan(
		&it.ID, &it.Kind, &it.Code, &it.Name, &it.Details, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "cadastro", id)
	}
	return &it, nil
}

func (r *ReferenceRepo) Update(ctx context.Context, item *entity.ReferenceItem) error {
	query := `
		UPDATE reference_items SET code = $2, name = $3, details = $4, active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, item.ID, item.Code, item.Name, item.Details, item.Active, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s já cadastrado em %s", domain.ErrConflict, item.Code, item.Kind)
		}
		return fmt.Errorf("update reference item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: cadastro %s", domain.ErrNotFound, item.ID)
	}
	return nil
}

func (r *ReferenceRepo) List(ctx context.Context, kind string, includeInactive bool) ([]*entity.ReferenceItem, error) {
	query := `
		SELECT ` + referenceColumns + ` FROM reference_items
		WHERE kind = $1 AND ($2 OR active)
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, kind, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list reference items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReferenceItem
	for rows.Next() {
		var it entity.ReferenceItem
		if err := rows.Scan(&it.ID, &it.Kind, &it.Code, &it.Name, &it.Details, &it.Active, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reference item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *ReferenceRepo) ExistsCode(ctx context.Context, kind, code, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reference_items WHERE kind = $1 AND lower(code) = lower($2) AND id <> $3)`,
		kind, code, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists reference code: %w", err)
	}
	return exists, nil
}

func (r *ReferenceRepo) CountActive(ctx context.Context, kind string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM reference_items WHERE kind = $1 AND active`, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reference items: %w", err)
	}
	return n, nil
}
