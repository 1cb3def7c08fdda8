package dto

import "github.com/shopspring/decimal"

// DashboardMetricsDTO resposta de GET /api/dashboard/metrics.
type DashboardMetricsDTO struct {
	// Embarques
	TotalShipments      int             `json:"total_shipments"`
	InProgressShipments int             `json:"in_progress_shipments"` // fora de PRE_EMBARQUE e ENTREGUE
	DelayedShipments    int             `json:"delayed_shipments"`     // ETA vencido e não entregue
	TotalFreight        decimal.Decimal `json:"total_freight"`

	// Entreposto
	ActiveAdmissions    int             `json:"active_admissions"`
	ExpiredAdmissions   int             `json:"expired_admissions"`
	FinalizedAdmissions int             `json:"finalized_admissions"`
	BondedValue         decimal.Decimal `json:"bonded_value"` // valor disponível em entreposto
}

// StatusCountDTO contagem de embarques por coluna do kanban.
type StatusCountDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Prioridades das próximas ações.
const (
	PriorityHigh   = "alta"
	PriorityMedium = "media"
	PriorityLow    = "baixa"
)

// UpcomingActionDTO item de GET /api/dashboard/proximas-acoes.
type UpcomingActionDTO struct {
	Type          string `json:"type"` // "entreposto" | "embarque"
	EntityID      string `json:"entity_id"`
	Reference     string `json:"reference"`
	Action        string `json:"action"`
	DueDate       string `json:"due_date"`
	DaysRemaining int    `json:"days_remaining"`
	Priority      string `json:"priority"`
}
