package repository

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// WithdrawalRepository persiste as retiradas e suas linhas.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *entity.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entity.Withdrawal, error)
	// ListByAdmission devolve o histórico da D.A., mais recente primeiro.
	ListByAdmission(ctx context.Context, admissionID string) ([]*entity.Withdrawal, error)
}
