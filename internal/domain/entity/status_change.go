package entity

import "time"

// StatusChange registra uma transição de status do embarque (histórico do kanban).
type StatusChange struct {
	ID             string
	ShipmentID     string
	PreviousStatus string
	NewStatus      string
	Notes          string
	ChangedBy      string
	ChangedAt      time.Time
}
