package entity

import "time"

// Tipos de cadastro (dados de referência chave-valor).
const (
	ReferenceKindExporters  = "exportadores"
	ReferenceKindCarriers   = "armadores"
	ReferenceKindPorts      = "portos"
	ReferenceKindCurrencies = "moedas"
	ReferenceKindUnits      = "unidades"
)

// IsValidReferenceKind indica se o tipo de cadastro é conhecido.
func IsValidReferenceKind(kind string) bool {
	switch kind {
	case ReferenceKindExporters, ReferenceKindCarriers, ReferenceKindPorts,
		ReferenceKindCurrencies, ReferenceKindUnits:
		return true
	}
	return false
}

// ReferenceItem é um registro de cadastro: exportador, armador, porto, moeda ou unidade de medida.
type ReferenceItem struct {
	ID        string
	Kind      string
	Code      string
	Name      string
	Details   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
