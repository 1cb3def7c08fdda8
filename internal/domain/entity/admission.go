package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma D.A. (Declaração de Admissão em entreposto aduaneiro).
const (
	AdmissionStatusActive    = "ATIVO"
	AdmissionStatusExpired   = "VENCIDO"    // derivado na leitura, nunca gravado por job
	AdmissionStatusFinalized = "FINALIZADO" // terminal: todo o saldo foi retirado
)

// Tipos de entreposto. Puramente informativos.
const (
	WarehouseTypeCLIA = "CLIA"
	WarehouseTypeEADI = "EADI"
)

// Admission representa uma D.A.: dona do saldo depletável das mercadorias de um embarque.
type Admission struct {
	ID                    string
	DeclarationNumber     string // número da D.A., único no sistema
	ShipmentID            string
	ShipmentReference     string // desnormalizado para busca
	ExporterName          string // desnormalizado para busca
	WarehouseType         string
	RegistrationDate      time.Time
	ExpiryDate            time.Time // RegistrationDate + 180 dias
	Status                string
	TotalWithdrawals      int
	Currency              string
	TotalMerchandiseValue decimal.Decimal
	Notes                 string
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Items                 []*BalanceItem
}

// IsValidWarehouseType indica se o tipo pertence ao conjunto fechado {CLIA, EADI}.
func IsValidWarehouseType(t string) bool {
	return t == WarehouseTypeCLIA || t == WarehouseTypeEADI
}
