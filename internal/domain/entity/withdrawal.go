package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal representa uma retirada (nacionalização parcial) registrada contra uma D.A.
type Withdrawal struct {
	ID             string
	AdmissionID    string
	DocumentNumber string // número da D.F.
	WithdrawnAt    time.Time
	Notes          string
	CreatedBy      string
	Items          []*WithdrawalItem
}

// WithdrawalItem é uma linha da retirada com o que efetivamente saiu do saldo.
type WithdrawalItem struct {
	ID            string
	WithdrawalID  string
	BalanceItemID string
	ProductCode   string
	Quantity      decimal.Decimal
	NetWeight     decimal.Decimal
	Value         decimal.Decimal
}
