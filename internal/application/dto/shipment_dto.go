package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest body para POST /api/embarques.
type CreateShipmentRequest struct {
	Reference             string           `json:"reference"`
	ImportType            string           `json:"import_type"`
	BusinessUnit          string           `json:"business_unit"`
	ExporterID            string           `json:"exporter_id,omitempty"`
	Carrier               string           `json:"carrier,omitempty"`
	Freight               *decimal.Decimal `json:"freight,omitempty"`
	Currency              string           `json:"currency,omitempty"`
	OriginPortID          string           `json:"origin_port_id,omitempty"`
	DestinationPortID     string           `json:"destination_port_id,omitempty"`
	ExpectedDepartureDate string           `json:"expected_departure_date,omitempty"` // YYYY-MM-DD
	ExpectedArrivalDate   string           `json:"expected_arrival_date,omitempty"`   // YYYY-MM-DD
	Notes                 string           `json:"notes,omitempty"`
}

// UpdateShipmentRequest atualização parcial: campos nil não são alterados.
type UpdateShipmentRequest struct {
	Reference             *string          `json:"reference,omitempty"`
	ImportType            *string          `json:"import_type,omitempty"`
	BusinessUnit          *string          `json:"business_unit,omitempty"`
	ExporterID            *string          `json:"exporter_id,omitempty"`
	Carrier               *string          `json:"carrier,omitempty"`
	Freight               *decimal.Decimal `json:"freight,omitempty"`
	Currency              *string          `json:"currency,omitempty"`
	OriginPortID          *string          `json:"origin_port_id,omitempty"`
	DestinationPortID     *string          `json:"destination_port_id,omitempty"`
	ExpectedDepartureDate *string          `json:"expected_departure_date,omitempty"`
	ExpectedArrivalDate   *string          `json:"expected_arrival_date,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
}

// ShipmentFilterRequest query de GET /api/embarques.
type ShipmentFilterRequest struct {
	PageRequest
	BusinessUnit string `query:"business_unit"`
	Status       string `query:"status"`
	ImportType   string `query:"import_type"`
	Search       string `query:"search"`
}

// ShipmentDTO resposta de um embarque.
type ShipmentDTO struct {
	ID                    string          `json:"id"`
	Reference             string          `json:"reference"`
	ImportType            string          `json:"import_type"`
	BusinessUnit          string          `json:"business_unit"`
	ExporterID            string          `json:"exporter_id,omitempty"`
	ExporterName          string          `json:"exporter_name,omitempty"`
	Carrier               string          `json:"carrier,omitempty"`
	Freight               decimal.Decimal `json:"freight"`
	Currency              string          `json:"currency"`
	OriginPortID          string          `json:"origin_port_id,omitempty"`
	DestinationPortID     string          `json:"destination_port_id,omitempty"`
	ExpectedDepartureDate string          `json:"expected_departure_date,omitempty"`
	ExpectedArrivalDate   string          `json:"expected_arrival_date,omitempty"`
	Status                string          `json:"status"`
	StatusLabel           string          `json:"status_label"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Invoices              []InvoiceDTO    `json:"invoices,omitempty"`
}

// ShipmentListResponse página de embarques.
type ShipmentListResponse struct {
	Items []ShipmentDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ChangeStatusRequest body para PATCH /api/embarques/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// StatusChangeDTO item do histórico do kanban.
type StatusChangeDTO struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Notes          string    `json:"notes,omitempty"`
	ChangedBy      string    `json:"changed_by,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}

// StatusOptionDTO coluna do kanban para GET /api/status.
type StatusOptionDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}
