package repository

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// AdmissionFilter filtros aplicados na camada de persistência.
// Status resolvido e busca textual ficam no use case porque dependem da data atual e do folding de acentos.
type AdmissionFilter struct {
	WarehouseType string
	ShipmentID    string
}

// AdmissionRepository define o porto de persistência para D.A. e seus itens de saldo.
// Todos os métodos de leitura devolvem a D.A. com Items em ordem de criação.
type AdmissionRepository interface {
	// Create grava a D.A. e todos os seus itens de saldo.
	Create(ctx context.Context, a *entity.Admission) error
	GetByID(ctx context.Context, id string) (*entity.Admission, error)
	// GetForUpdate carrega a D.A. bloqueando a linha até o fim da transação.
	GetForUpdate(ctx context.Context, id string) (*entity.Admission, error)
	ExistsDeclarationNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter AdmissionFilter) ([]*entity.Admission, error)
	// UpdateBalance persiste status, contador de retiradas e os campos móveis de cada item.
	UpdateBalance(ctx context.Context, a *entity.Admission) error
}
