package entity

import "github.com/shopspring/decimal"

// BalanceItem é uma linha de saldo de uma D.A., criada a partir de um item de invoice.
// Invariantes: QuantityOriginal = QuantityWithdrawn + QuantityAvailable e QuantityAvailable >= 0.
type BalanceItem struct {
	ID            string
	AdmissionID   string
	Position      int // ordem de criação dentro da D.A.
	InvoiceID     string
	InvoiceNumber string
	ProductCode   string
	Description   string
	NCM           string
	Batch         string
	Unit          string

	QuantityOriginal  decimal.Decimal
	QuantityWithdrawn decimal.Decimal
	QuantityAvailable decimal.Decimal

	NetWeightOriginal  decimal.Decimal
	NetWeightWithdrawn decimal.Decimal
	NetWeightAvailable decimal.Decimal

	UnitValue      decimal.Decimal
	ValueAvailable decimal.Decimal // subtração acumulada, não recalculada
}
