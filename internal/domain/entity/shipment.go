package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status do embarque, na ordem das colunas do kanban.
const (
	ShipmentStatusPreShipment         = "PRE_EMBARQUE"
	ShipmentStatusLoadedOnBoard       = "CARREGADO_BORDO"
	ShipmentStatusInTransit           = "EM_TRANSITO"
	ShipmentStatusPortArrival         = "CHEGADA_PORTO"
	ShipmentStatusCargoPresence       = "PRESENCA_CARGA"
	ShipmentStatusDIRegistered        = "REGISTRO_DI"
	ShipmentStatusChannelAssigned     = "CANAL_PARAMETRIZADO"
	ShipmentStatusReleased            = "LIBERADO_CARREGAMENTO"
	ShipmentStatusPickupScheduled     = "AGENDAMENTO_RETIRADA"
	ShipmentStatusDelivered           = "ENTREGUE"
	ShipmentStatusWarehouseEntry      = "ENTRADA_ENTREPOSTO"
	ShipmentStatusAwaitingNationalize = "AGUARDANDO_NACIONALIZACAO"
	ShipmentStatusPartialNationalized = "NACIONALIZACAO_PARCIAL"
	ShipmentStatusFullyNationalized   = "NACIONALIZACAO_COMPLETA"
)

// ShipmentStatuses lista os status válidos na ordem do kanban.
var ShipmentStatuses = []string{
	ShipmentStatusPreShipment,
	ShipmentStatusLoadedOnBoard,
	ShipmentStatusInTransit,
	ShipmentStatusPortArrival,
	ShipmentStatusCargoPresence,
	ShipmentStatusDIRegistered,
	ShipmentStatusChannelAssigned,
	ShipmentStatusReleased,
	ShipmentStatusPickupScheduled,
	ShipmentStatusDelivered,
	ShipmentStatusWarehouseEntry,
	ShipmentStatusAwaitingNationalize,
	ShipmentStatusPartialNationalized,
	ShipmentStatusFullyNationalized,
}

// IsValidShipmentStatus indica se o status existe no kanban.
func IsValidShipmentStatus(s string) bool {
	for _, st := range ShipmentStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Tipos de importação e unidades de negócio.
const (
	ImportTypeOwnAccount = "CONTA_PROPRIA"
	ImportTypeViaTrade   = "VIA_TRADE"

	BusinessUnitCeara         = "CEARA"
	BusinessUnitSantaCatarina = "SANTA_CATARINA"
)

// Shipment representa um embarque de importação.
type Shipment struct {
	ID                    string
	Reference             string // número de referência, único (ex: BIO-2024-001)
	ImportType            string
	BusinessUnit          string
	ExporterID            string
	ExporterName          string
	Carrier               string // armador
	Freight               decimal.Decimal
	Currency              string
	OriginPortID          string
	DestinationPortID     string
	ExpectedDepartureDate *time.Time
	ExpectedArrivalDate   *time.Time // ETA
	Status                string
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsAwaitingArrival indica se o embarque ainda não chegou ao porto de destino.
func IsAwaitingArrival(status string) bool {
	switch status {
	case ShipmentStatusPreShipment, ShipmentStatusLoadedOnBoard, ShipmentStatusInTransit:
		return true
	}
	return false
}

// StatusLabel rótulo legível do status: "EM_TRANSITO" -> "Em Transito".
func StatusLabel(status string) string {
	words := strings.Split(strings.ToLower(status), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
