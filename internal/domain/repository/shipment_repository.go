package repository

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// ShipmentFilter filtros exatos do kanban. Busca textual e paginação ficam no use case.
type ShipmentFilter struct {
	BusinessUnit string
	Status       string
	ImportType   string
}

// ShipmentRepository define o porto de persistência para embarques.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	// ExistsReference ignora o embarque excludeID (vazio na criação).
	ExistsReference(ctx context.Context, reference, excludeID string) (bool, error)
	Update(ctx context.Context, s *entity.Shipment) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// List devolve os embarques mais recentes primeiro.
	List(ctx context.Context, filter ShipmentFilter) ([]*entity.Shipment, error)
}

// StatusHistoryRepository guarda as transições do kanban.
type StatusHistoryRepository interface {
	Create(ctx context.Context, c *entity.StatusChange) error
	ListByShipment(ctx context.Context, shipmentID string) ([]*entity.StatusChange, error)
}
