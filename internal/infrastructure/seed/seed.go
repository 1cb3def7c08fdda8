// Package seed carrega os dados de demonstração (embarques, invoices, D.A. e cadastros)
// em qualquer implementação dos repositórios.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

// Repositories destinos do seed.
type Repositories struct {
	References  repository.ReferenceRepository
	Shipments   repository.ShipmentRepository
	History     repository.StatusHistoryRepository
	Invoices    repository.InvoiceRepository
	Admissions  repository.AdmissionRepository
	Withdrawals repository.WithdrawalRepository
}

// MarkerReference embarque cuja existência indica que o seed já foi aplicado.
const MarkerReference = "BIO-2025-001"

// ID devolve o UUID estável de uma chave do seed (mesmo valor em toda execução).
func ID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("biocol-seed:"+key)).String()
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Load grava os dados de demonstração. Devolve false sem alterar nada se já estiverem carregados.
func Load(ctx context.Context, r Repositories) (bool, error) {
	exists, err := r.Shipments.ExistsReference(ctx, MarkerReference, "")
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	for _, ref := range references() {
		if err := r.References.Create(ctx, ref); err != nil {
			return false, fmt.Errorf("seed cadastro %s/%s: %w", ref.Kind, ref.Code, err)
		}
	}
	for _, sh := range shipments() {
		if err := r.Shipments.Create(ctx, sh); err != nil {
			return false, fmt.Errorf("seed embarque %s: %w", sh.Reference, err)
		}
	}
	for _, h := range history() {
		if err := r.History.Create(ctx, h); err != nil {
			return false, fmt.Errorf("seed histórico: %w", err)
		}
	}
	for _, inv := range invoices() {
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return false, fmt.Errorf("seed invoice %s: %w", inv.Number, err)
		}
	}
	for _, a := range admissions() {
		if err := r.Admissions.Create(ctx, a); err != nil {
			return false, fmt.Errorf("seed D.A. %s: %w", a.DeclarationNumber, err)
		}
	}
	for _, w := range withdrawals() {
		if err := r.Withdrawals.Create(ctx, w); err != nil {
			return false, fmt.Errorf("seed retirada %s: %w", w.DocumentNumber, err)
		}
	}
	return true, nil
}

func references() []*entity.ReferenceItem {
	created := day("2025-01-01")
	mk := func(kind, code, name, details string) *entity.ReferenceItem {
		return &entity.ReferenceItem{
			ID:        ID(kind + ":" + code),
			Kind:      kind,
			Code:      code,
			Name:      name,
			Details:   details,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		}
	}
	return []*entity.ReferenceItem{
		mk(entity.ReferenceKindExporters, "exp1", "ChemCorp Industries Ltd", "Shanghai, China"),
		mk(entity.ReferenceKindExporters, "exp2", "Global Supplies Ltd", "Hong Kong"),
		mk(entity.ReferenceKindExporters, "exp3", "European Trading Co", "Hamburg, Germany"),
		mk(entity.ReferenceKindCarriers, "MAERSK", "Maersk Line", ""),
		mk(entity.ReferenceKindCarriers, "MSC", "MSC", ""),
		mk(entity.ReferenceKindCarriers, "CMA", "CMA CGM", ""),
		mk(entity.ReferenceKindCarriers, "EVERGREEN", "Evergreen", ""),
		mk(entity.ReferenceKindCarriers, "COSCO", "COSCO", ""),
		mk(entity.ReferenceKindPorts, "CNSHA", "Shanghai", "China"),
		mk(entity.ReferenceKindPorts, "HKHKG", "Hong Kong", "Hong Kong"),
		mk(entity.ReferenceKindPorts, "DEHAM", "Hamburg", "Germany"),
		mk(entity.ReferenceKindPorts, "BRFOR", "Fortaleza", "Brasil"),
		mk(entity.ReferenceKindPorts, "BRIGN", "Itajaí/Navegantes", "Brasil"),
		mk(entity.ReferenceKindPorts, "BRSSZ", "Santos", "Brasil"),
		mk(entity.ReferenceKindCurrencies, "USD", "Dólar dos EUA", ""),
		mk(entity.ReferenceKindCurrencies, "EUR", "Euro", ""),
		mk(entity.ReferenceKindCurrencies, "BRL", "Real", ""),
		mk(entity.ReferenceKindUnits, "KG", "Quilograma", ""),
		mk(entity.ReferenceKindUnits, "UN", "Unidade", ""),
		mk(entity.ReferenceKindUnits, "PC", "Peça", ""),
		mk(entity.ReferenceKindUnits, "SET", "Conjunto", ""),
	}
}

func shipments() []*entity.Shipment {
	mk := func(n int, importType, unit, exporter, carrier, freight, currency, origin, dest, dep, eta, status, created, notes string) *entity.Shipment {
		c, _ := time.Parse(time.RFC3339, created)
		return &entity.Shipment{
			ID:                    ID(fmt.Sprintf("shipment:%d", n)),
			Reference:             fmt.Sprintf("BIO-2025-%03d", n),
			ImportType:            importType,
			BusinessUnit:          unit,
			ExporterID:            ID(entity.ReferenceKindExporters + ":" + exporter),
			Carrier:               carrier,
			Freight:               dec(freight),
			Currency:              currency,
			OriginPortID:          origin,
			DestinationPortID:     dest,
			ExpectedDepartureDate: dayPtr(dep),
			ExpectedArrivalDate:   dayPtr(eta),
			Status:                status,
			Notes:                 notes,
			CreatedAt:             c,
			UpdatedAt:             c,
		}
	}
	return []*entity.Shipment{
		mk(1, entity.ImportTypeOwnAccount, entity.BusinessUnitCeara, "exp1", "Maersk Line", "81688.80", "USD",
			"CNSHA", "BRFOR", "2025-01-20", "2025-02-15", entity.ShipmentStatusWarehouseEntry,
			"2025-01-10T08:00:00Z", "Embarque prioritário - produtos químicos para expansão CE"),
		mk(2, entity.ImportTypeViaTrade, entity.BusinessUnitSantaCatarina, "exp2", "MSC", "45280.00", "USD",
			"HKHKG", "BRIGN", "2025-01-25", "2025-02-20", entity.ShipmentStatusWarehouseEntry,
			"2025-01-12T09:15:00Z", "Equipamentos para modernização da unidade SC"),
		mk(3, entity.ImportTypeOwnAccount, entity.BusinessUnitCeara, "exp3", "CMA CGM", "18500", "EUR",
			"DEHAM", "BRFOR", "2025-02-01", "2025-02-28", entity.ShipmentStatusPreShipment,
			"2025-01-20T11:20:00Z", "Maquinário especializado - necessário acompanhamento técnico"),
		mk(4, entity.ImportTypeViaTrade, entity.BusinessUnitSantaCatarina, "exp1", "Evergreen", "12800", "USD",
			"CNSHA", "BRSSZ", "2025-02-05", "2025-03-05", entity.ShipmentStatusCargoPresence,
			"2025-01-25T13:45:00Z", "Aguardando liberação da Receita Federal"),
		mk(5, entity.ImportTypeOwnAccount, entity.BusinessUnitCeara, "exp2", "COSCO", "16200", "USD",
			"HKHKG", "BRFOR", "2025-02-10", "2025-03-10", entity.ShipmentStatusReleased,
			"2025-02-01T07:15:00Z", "Pronto para retirada - coordenar com transportadora"),
	}
}

func history() []*entity.StatusChange {
	mk := func(n int, prev, da, at string) *entity.StatusChange {
		return &entity.StatusChange{
			ID:             ID(fmt.Sprintf("history:%d", n)),
			ShipmentID:     ID(fmt.Sprintf("shipment:%d", n)),
			PreviousStatus: prev,
			NewStatus:      entity.ShipmentStatusWarehouseEntry,
			Notes:          fmt.Sprintf("D.A. %s criada", da),
			ChangedBy:      "seed",
			ChangedAt:      day(at),
		}
	}
	return []*entity.StatusChange{
		mk(1, entity.ShipmentStatusInTransit, "DA-2025-0001", "2025-01-15"),
		mk(2, entity.ShipmentStatusPortArrival, "DA-2025-0002", "2025-01-20"),
	}
}

func invoices() []*entity.Invoice {
	item := func(inv, key, code, desc, ncm, batch, unit, qty, net, gross, unitValue string) *entity.InvoiceItem {
		q, uv := dec(qty), dec(unitValue)
		return &entity.InvoiceItem{
			ID:          ID("invoice-item:" + key),
			InvoiceID:   ID("invoice:" + inv),
			ProductCode: code,
			Description: desc,
			NCM:         ncm,
			Batch:       batch,
			Unit:        unit,
			Quantity:    q,
			NetWeight:   dec(net),
			GrossWeight: dec(gross),
			UnitValue:   uv,
			TotalValue:  q.Mul(uv),
			CreatedAt:   day("2025-01-18"),
		}
	}
	return []*entity.Invoice{
		{
			ID:         ID("invoice:inv1"),
			ShipmentID: ID("shipment:1"),
			Number:     "SHYD9241115726",
			Type:       "COMMERCIAL_INVOICE",
			IssueDate:  day("2025-01-18"),
			Currency:   "USD",
			TotalValue: dec("81688.80"),
			Notes:      "Invoice principal - produtos químicos",
			CreatedAt:  day("2025-01-18"),
			UpdatedAt:  day("2025-01-18"),
			Items: []*entity.InvoiceItem{
				item("inv1", "item1", "YD-8238", "POLYETHER POLYOL YD-8238", "39072090", "YD823801252025", "KG", "11760", "11760", "12759.30", "2.45"),
				item("inv1", "item2", "CT-405", "CATALYST BLEND CT-405", "38159090", "CT40501252025", "KG", "5800", "5800", "6120", "8.95"),
			},
		},
		{
			ID:         ID("invoice:inv2"),
			ShipmentID: ID("shipment:2"),
			Number:     "GSL2024001156",
			Type:       "COMMERCIAL_INVOICE",
			IssueDate:  day("2025-01-22"),
			Currency:   "USD",
			TotalValue: dec("45280.00"),
			Notes:      "Equipamentos industriais",
			CreatedAt:  day("2025-01-22"),
			UpdatedAt:  day("2025-01-22"),
			Items: []*entity.InvoiceItem{
				item("inv2", "item3", "P-350", "INDUSTRIAL PUMP P-350", "84135090", "P35001252025", "PC", "1", "850", "920", "42500"),
				item("inv2", "item4", "SPK-P350", "SPARE PARTS KIT", "84135090", "SPK35001252025", "SET", "1", "125", "145", "2780"),
			},
		},
	}
}

// balance item com quantidade já retirada aplicada pela regra proporcional.
func balance(admission string, pos int, invoice, invoiceNumber, code, desc, ncm, batch, unit, qty, net, unitValue, withdrawn string) *entity.BalanceItem {
	q, w, n, uv := dec(qty), dec(withdrawn), dec(net), dec(unitValue)
	it := &entity.BalanceItem{
		ID:                 ID(fmt.Sprintf("balance:%s:%d", admission, pos)),
		AdmissionID:        ID("admission:" + admission),
		Position:           pos,
		InvoiceID:          ID("invoice:" + invoice),
		InvoiceNumber:      invoiceNumber,
		ProductCode:        code,
		Description:        desc,
		NCM:                ncm,
		Batch:              batch,
		Unit:               unit,
		QuantityOriginal:   q,
		QuantityWithdrawn:  decimal.Zero,
		QuantityAvailable:  q,
		NetWeightOriginal:  n,
		NetWeightWithdrawn: decimal.Zero,
		NetWeightAvailable: n,
		UnitValue:          uv,
		ValueAvailable:     q.Mul(uv),
	}
	if w.IsPositive() {
		rules.ApplyWithdrawal(it, w)
	}
	return it
}

func admissions() []*entity.Admission {
	ent1 := &entity.Admission{
		ID:                    ID("admission:ent1"),
		DeclarationNumber:     "DA-2025-0001",
		ShipmentID:            ID("shipment:1"),
		ShipmentReference:     "BIO-2025-001",
		ExporterName:          "ChemCorp Industries Ltd",
		WarehouseType:         entity.WarehouseTypeCLIA,
		RegistrationDate:      day("2025-01-15"),
		ExpiryDate:            rules.ExpiryDate(day("2025-01-15")),
		Status:                entity.AdmissionStatusActive,
		TotalWithdrawals:      2,
		Currency:              "USD",
		TotalMerchandiseValue: dec("81688.80"),
		CreatedBy:             "seed",
		CreatedAt:             day("2025-01-15"),
		UpdatedAt:             day("2025-03-05"),
		Items: []*entity.BalanceItem{
			balance("ent1", 1, "inv1", "SHYD9241115726", "YD-8238", "POLYETHER POLYOL YD-8238", "39072090", "YD823801252025", "KG", "11760", "11760", "2.45", "2000"),
			balance("ent1", 2, "inv1", "SHYD9241115726", "CT-405", "CATALYST BLEND CT-405", "38159090", "CT40501252025", "KG", "5800", "5800", "8.95", "800"),
		},
	}
	ent2 := &entity.Admission{
		ID:                    ID("admission:ent2"),
		DeclarationNumber:     "DA-2025-0002",
		ShipmentID:            ID("shipment:2"),
		ShipmentReference:     "BIO-2025-002",
		ExporterName:          "Global Supplies Ltd",
		WarehouseType:         entity.WarehouseTypeEADI,
		RegistrationDate:      day("2025-01-20"),
		ExpiryDate:            rules.ExpiryDate(day("2025-01-20")),
		Status:                entity.AdmissionStatusActive,
		Currency:              "USD",
		TotalMerchandiseValue: dec("45280.00"),
		CreatedBy:             "seed",
		CreatedAt:             day("2025-01-20"),
		UpdatedAt:             day("2025-01-20"),
		Items: []*entity.BalanceItem{
			balance("ent2", 1, "inv2", "GSL2024001156", "P-350", "INDUSTRIAL PUMP P-350", "84135090", "P35001252025", "PC", "1", "850", "42500", "0"),
			balance("ent2", 2, "inv2", "GSL2024001156", "SPK-P350", "SPARE PARTS KIT", "84135090", "SPK35001252025", "SET", "1", "125", "2780", "0"),
		},
	}
	return []*entity.Admission{ent1, ent2}
}

func withdrawals() []*entity.Withdrawal {
	mk := func(key, doc, at string, pos int, code, qty, weight, value string) *entity.Withdrawal {
		id := ID("withdrawal:" + key)
		return &entity.Withdrawal{
			ID:             id,
			AdmissionID:    ID("admission:ent1"),
			DocumentNumber: doc,
			WithdrawnAt:    day(at),
			CreatedBy:      "seed",
			Items: []*entity.WithdrawalItem{{
				ID:            ID("withdrawal-item:" + key),
				WithdrawalID:  id,
				BalanceItemID: ID(fmt.Sprintf("balance:ent1:%d", pos)),
				ProductCode:   code,
				Quantity:      dec(qty),
				NetWeight:     dec(weight),
				Value:         dec(value),
			}},
		}
	}
	return []*entity.Withdrawal{
		mk("w1", "DF-2025-0001", "2025-02-20", 1, "YD-8238", "2000", "2000", "4900"),
		mk("w2", "DF-2025-0002", "2025-03-05", 2, "CT-405", "800", "800", "7160"),
	}
}
