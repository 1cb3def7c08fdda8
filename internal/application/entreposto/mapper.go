package entreposto

import (
	"time"

	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
)

// toAdmissionDTO converte a D.A. aplicando o status resolvido em now.
func toAdmissionDTO(a *entity.Admission, now time.Time) dto.AdmissionDTO {
	return dto.AdmissionDTO{
		ID:                    a.ID,
		DeclarationNumber:     a.DeclarationNumber,
		ShipmentID:            a.ShipmentID,
		ShipmentReference:     a.ShipmentReference,
		ExporterName:          a.ExporterName,
		WarehouseType:         a.WarehouseType,
		RegistrationDate:      a.RegistrationDate.Format(dto.DateLayout),
		ExpiryDate:            a.ExpiryDate.Format(dto.DateLayout),
		Status:                rules.ResolveStatus(a, now),
		TotalWithdrawals:      a.TotalWithdrawals,
		Currency:              a.Currency,
		TotalMerchandiseValue: a.TotalMerchandiseValue,
		Notes:                 a.Notes,
		CreatedBy:             a.CreatedBy,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
		TotalAvailable:        rules.TotalAvailable(a.Items),
		ValueAvailable:        rules.TotalValueAvailable(a.Items),
		DaysToExpiry:          rules.DaysToExpiry(a, now),
		Items:                 toBalanceItemDTOs(a.Items, false),
	}
}

// toBalanceItemDTOs converte os itens; onlyAvailable descarta os já zerados.
func toBalanceItemDTOs(items []*entity.BalanceItem, onlyAvailable bool) []dto.BalanceItemDTO {
	out := make([]dto.BalanceItemDTO, 0, len(items))
	for _, it := range items {
		if onlyAvailable && !it.QuantityAvailable.IsPositive() {
			continue
		}
		out = append(out, dto.BalanceItemDTO{
			ID:                 it.ID,
			InvoiceID:          it.InvoiceID,
			InvoiceNumber:      it.InvoiceNumber,
			ProductCode:        it.ProductCode,
			Description:        it.Description,
			NCM:                it.NCM,
			Batch:              it.Batch,
			Unit:               it.Unit,
			QuantityOriginal:   it.QuantityOriginal,
			QuantityWithdrawn:  it.QuantityWithdrawn,
			QuantityAvailable:  it.QuantityAvailable,
			NetWeightOriginal:  it.NetWeightOriginal,
			NetWeightWithdrawn: it.NetWeightWithdrawn,
			NetWeightAvailable: it.NetWeightAvailable,
			UnitValue:          it.UnitValue,
			ValueAvailable:     it.ValueAvailable,
		})
	}
	return out
}

func toWithdrawalDTO(w *entity.Withdrawal) dto.WithdrawalDTO {
	items := make([]dto.WithdrawalItemDTO, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, dto.WithdrawalItemDTO{
			BalanceItemID: it.BalanceItemID,
			ProductCode:   it.ProductCode,
			Quantity:      it.Quantity,
			NetWeight:     it.NetWeight,
			Value:         it.Value,
		})
	}
	return dto.WithdrawalDTO{
		ID:             w.ID,
		AdmissionID:    w.AdmissionID,
		DocumentNumber: w.DocumentNumber,
		WithdrawnAt:    w.WithdrawnAt,
		Notes:          w.Notes,
		CreatedBy:      w.CreatedBy,
		Items:          items,
	}
}
