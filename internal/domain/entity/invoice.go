package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa a invoice comercial de um embarque.
type Invoice struct {
	ID         string
	ShipmentID string
	Number     string // único por embarque
	Type       string
	IssueDate  time.Time
	Currency   string
	TotalValue decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []*InvoiceItem
}

// InvoiceItem representa uma linha de produto da invoice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductCode string
	Description string
	NCM         string
	Batch       string
	Unit        string
	Quantity    decimal.Decimal
	NetWeight   decimal.Decimal
	GrossWeight decimal.Decimal
	UnitValue   decimal.Decimal
	TotalValue  decimal.Decimal
	CreatedAt   time.Time
}
