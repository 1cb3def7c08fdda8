package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// ShipmentTotals agregados de embarques para o painel.
type ShipmentTotals struct {
	Total        int
	InProgress   int             // fora de PRE_EMBARQUE e ENTREGUE
	Delayed      int             // ETA anterior a hoje e não ENTREGUE
	TotalFreight decimal.Decimal
}

// AdmissionTotals agregados de D.A. com status resolvido na data informada.
type AdmissionTotals struct {
	Active         int
	Expired        int
	Finalized      int
	ValueAvailable decimal.Decimal // soma do valor disponível de todos os itens
}

// DashboardRepository consultas de leitura do painel. Implementações são read-only.
type DashboardRepository interface {
	ShipmentTotals(ctx context.Context, today time.Time) (ShipmentTotals, error)
	CountShipmentsByStatus(ctx context.Context) (map[string]int, error)
	AdmissionTotals(ctx context.Context, today time.Time) (AdmissionTotals, error)
	// ExpiringAdmissions D.A. ativas com vencimento em [from, until].
	ExpiringAdmissions(ctx context.Context, from, until time.Time) ([]*entity.Admission, error)
	// ArrivingShipments embarques não entregues com ETA em [from, until].
	ArrivingShipments(ctx context.Context, from, until time.Time) ([]*entity.Shipment, error)
}
