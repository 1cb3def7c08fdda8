package repository

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// ReferenceRepository persiste os cadastros (exportadores, armadores, portos, moedas, unidades).
type ReferenceRepository interface {
	Create(ctx context.Context, item *entity.ReferenceItem) error
	GetByID(ctx context.Context, id string) (*entity.ReferenceItem, error)
	Update(ctx context.Context, item *entity.ReferenceItem) error
	// List ordena por nome; includeInactive=false devolve só os ativos.
	List(ctx context.Context, kind string, includeInactive bool) ([]*entity.ReferenceItem, error)
	ExistsCode(ctx context.Context, kind, code, excludeID string) (bool, error)
	CountActive(ctx context.Context, kind string) (int, error)
}
