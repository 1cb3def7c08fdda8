package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest linha de produto enviada na criação ou edição.
type InvoiceItemRequest struct {
	ProductCode string           `json:"product_code"`
	Description string           `json:"description,omitempty"`
	NCM         string           `json:"ncm,omitempty"`
	Batch       string           `json:"batch,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	NetWeight   decimal.Decimal  `json:"net_weight"`
	GrossWeight decimal.Decimal  `json:"gross_weight"`
	UnitValue   decimal.Decimal  `json:"unit_value"`
	TotalValue  *decimal.Decimal `json:"total_value,omitempty"` // nil = quantidade × valor unitário
}

// CreateInvoiceRequest body para POST /api/embarques/:id/invoices.
type CreateInvoiceRequest struct {
	Number     string               `json:"number"`
	Type       string               `json:"type,omitempty"`
	IssueDate  string               `json:"issue_date,omitempty"` // YYYY-MM-DD
	Currency   string               `json:"currency,omitempty"`
	TotalValue decimal.Decimal      `json:"total_value"`
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItemRequest `json:"items,omitempty"`
}

// UpdateInvoiceRequest atualização parcial do cabeçalho da invoice.
type UpdateInvoiceRequest struct {
	Number     *string          `json:"number,omitempty"`
	Type       *string          `json:"type,omitempty"`
	IssueDate  *string          `json:"issue_date,omitempty"`
	Currency   *string          `json:"currency,omitempty"`
	TotalValue *decimal.Decimal `json:"total_value,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// InvoiceItemDTO resposta de uma linha da invoice.
type InvoiceItemDTO struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	ProductCode string          `json:"product_code"`
	Description string          `json:"description"`
	NCM         string          `json:"ncm"`
	Batch       string          `json:"batch"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// InvoiceDTO resposta de uma invoice com itens.
type InvoiceDTO struct {
	ID         string           `json:"id"`
	ShipmentID string           `json:"shipment_id"`
	Number     string           `json:"number"`
	Type       string           `json:"type,omitempty"`
	IssueDate  string           `json:"issue_date,omitempty"`
	Currency   string           `json:"currency"`
	TotalValue decimal.Decimal  `json:"total_value"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Items      []InvoiceItemDTO `json:"items"`
}
