package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdmissionRequest body para POST /api/entrepostos.
type CreateAdmissionRequest struct {
	ShipmentID        string `json:"shipment_id"`
	WarehouseType     string `json:"warehouse_type"`
	DeclarationNumber string `json:"declaration_number"`
	RegistrationDate  string `json:"registration_date"` // YYYY-MM-DD; vazio = hoje
	Notes             string `json:"notes,omitempty"`
}

// AdmissionFilterRequest query de GET /api/entrepostos.
type AdmissionFilterRequest struct {
	PageRequest
	WarehouseType string `query:"warehouse_type"`
	Status        string `query:"status"`
	Search        string `query:"search"`
}

// BalanceItemDTO linha de saldo da D.A.
type BalanceItemDTO struct {
	ID                 string          `json:"id"`
	InvoiceID          string          `json:"invoice_id"`
	InvoiceNumber      string          `json:"invoice_number"`
	ProductCode        string          `json:"product_code"`
	Description        string          `json:"description"`
	NCM                string          `json:"ncm"`
	Batch              string          `json:"batch"`
	Unit               string          `json:"unit"`
	QuantityOriginal   decimal.Decimal `json:"quantity_original"`
	QuantityWithdrawn  decimal.Decimal `json:"quantity_withdrawn"`
	QuantityAvailable  decimal.Decimal `json:"quantity_available"`
	NetWeightOriginal  decimal.Decimal `json:"net_weight_original"`
	NetWeightWithdrawn decimal.Decimal `json:"net_weight_withdrawn"`
	NetWeightAvailable decimal.Decimal `json:"net_weight_available"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	ValueAvailable     decimal.Decimal `json:"value_available"`
}

// AdmissionDTO resposta de uma D.A. com status resolvido e totais derivados.
type AdmissionDTO struct {
	ID                    string           `json:"id"`
	DeclarationNumber     string           `json:"declaration_number"`
	ShipmentID            string           `json:"shipment_id"`
	ShipmentReference     string           `json:"shipment_reference"`
	ExporterName          string           `json:"exporter_name"`
	WarehouseType         string           `json:"warehouse_type"`
	RegistrationDate      string           `json:"registration_date"`
	ExpiryDate            string           `json:"expiry_date"`
	Status                string           `json:"status"`
	TotalWithdrawals      int              `json:"total_withdrawals"`
	Currency              string           `json:"currency"`
	TotalMerchandiseValue decimal.Decimal  `json:"total_merchandise_value"`
	Notes                 string           `json:"notes,omitempty"`
	CreatedBy             string           `json:"created_by,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	TotalAvailable        decimal.Decimal  `json:"total_available"` // saldo total
	ValueAvailable        decimal.Decimal  `json:"value_available"`
	DaysToExpiry          int              `json:"days_to_expiry"`
	Items                 []BalanceItemDTO `json:"items"`
}

// AdmissionListResponse página de D.A.
type AdmissionListResponse struct {
	Items []AdmissionDTO `json:"items"`
	Page  PageResponse   `json:"page"`
}

// BalanceResponse resposta de GET /api/entrepostos/:id/saldo.
type BalanceResponse struct {
	AdmissionID       string           `json:"admission_id"`
	DeclarationNumber string           `json:"declaration_number"`
	Status            string           `json:"status"`
	ExpiryDate        string           `json:"expiry_date"`
	Items             []BalanceItemDTO `json:"items"`
}

// WithdrawalLineRequest linha do pedido de retirada.
type WithdrawalLineRequest struct {
	BalanceItemID string          `json:"balance_item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// WithdrawalRequest body para POST /api/entrepostos/:id/retiradas.
type WithdrawalRequest struct {
	DocumentNumber string                  `json:"document_number,omitempty"` // D.F.; vazio = DF-<unix ms>
	Notes          string                  `json:"notes,omitempty"`
	Items          []WithdrawalLineRequest `json:"items"`
}

// WithdrawalItemDTO linha efetivamente baixada.
type WithdrawalItemDTO struct {
	BalanceItemID string          `json:"balance_item_id"`
	ProductCode   string          `json:"product_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	NetWeight     decimal.Decimal `json:"net_weight"`
	Value         decimal.Decimal `json:"value"`
}

// WithdrawalDTO resposta de uma retirada.
type WithdrawalDTO struct {
	ID              string              `json:"id"`
	AdmissionID     string              `json:"admission_id"`
	DocumentNumber  string              `json:"document_number"`
	WithdrawnAt     time.Time           `json:"withdrawn_at"`
	Notes           string              `json:"notes,omitempty"`
	CreatedBy       string              `json:"created_by,omitempty"`
	Items           []WithdrawalItemDTO `json:"items"`
	AdmissionStatus string              `json:"admission_status,omitempty"` // status da D.A. após a retirada
}
