package entreposto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
	"github.com/jhoicas/biocol-import-api/pkg/textutil"
)

const defaultAdmissionPageSize = 50

// AdmissionUseCase ciclo de vida da D.A.: criação com saldo semeado a partir das
// invoices do embarque e leituras com status resolvido na data corrente.
type AdmissionUseCase struct {
	txRunner      TxRunner
	admissionRepo repository.AdmissionRepository
	shipmentRepo  repository.ShipmentRepository
	invoiceRepo   repository.InvoiceRepository
	metrics       Metrics
	log           *logger.Logger
	clock         clock.Clock
}

// NewAdmissionUseCase constrói o caso de uso.
func NewAdmissionUseCase(
	txRunner TxRunner,
	admissionRepo repository.AdmissionRepository,
	shipmentRepo repository.ShipmentRepository,
	invoiceRepo repository.InvoiceRepository,
	metrics Metrics,
	log *logger.Logger,
	clk clock.Clock,
) *AdmissionUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdmissionUseCase{
		txRunner:      txRunner,
		admissionRepo: admissionRepo,
		shipmentRepo:  shipmentRepo,
		invoiceRepo:   invoiceRepo,
		metrics:       metrics,
		log:           log.Component("entreposto"),
		clock:         clk,
	}
}

// Create registra a D.A. e semeia um item de saldo por item de invoice do embarque.
// Na mesma transação o embarque passa para ENTRADA_ENTREPOSTO.
func (uc *AdmissionUseCase) Create(ctx context.Context, userID string, in dto.CreateAdmissionRequest) (*dto.AdmissionDTO, error) {
	number := strings.TrimSpace(in.DeclarationNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: número da D.A. é obrigatório", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ShipmentID) == "" {
		return nil, fmt.Errorf("%w: embarque é obrigatório", domain.ErrInvalidInput)
	}
	if !entity.IsValidWarehouseType(in.WarehouseType) {
		return nil, fmt.Errorf("%w: tipo de entreposto inválido %q (use CLIA ou EADI)", domain.ErrInvalidInput, in.WarehouseType)
	}
	registration := uc.clock.Today()
	if in.RegistrationDate != "" {
		parsed, err := time.Parse(dto.DateLayout, in.RegistrationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: data de registro inválida %q (use AAAA-MM-DD)", domain.ErrInvalidInput, in.RegistrationDate)
		}
		registration = parsed
	}
	if err := rules.CheckRegistrationDate(registration, uc.clock.Today()); err != nil {
		return nil, err
	}

	shipment, err := uc.shipmentRepo.GetByID(ctx, in.ShipmentID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.admissionRepo.ExistsDeclarationNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: número da D.A. %s já existe", domain.ErrConflict, number)
	}
	invoices, err := uc.invoiceRepo.ListByShipment(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	a := &entity.Admission{
		ID:                    uuid.New().String(),
		DeclarationNumber:     number,
		ShipmentID:            shipment.ID,
		ShipmentReference:     shipment.Reference,
		ExporterName:          shipment.ExporterName,
		WarehouseType:         in.WarehouseType,
		RegistrationDate:      registration,
		ExpiryDate:            rules.ExpiryDate(registration),
		Status:                entity.AdmissionStatusActive,
		Currency:              shipment.Currency,
		TotalMerchandiseValue: decimal.Zero,
		Notes:                 strings.TrimSpace(in.Notes),
		CreatedBy:             userID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	a.Items, a.TotalMerchandiseValue = seedBalance(a.ID, invoices)

	err = uc.txRunner.Run(ctx, func(
		admissionRepo repository.AdmissionRepository,
		_ repository.WithdrawalRepository,
		shipmentRepo repository.ShipmentRepository,
		historyRepo repository.StatusHistoryRepository,
	) error {
		if err := admissionRepo.Create(ctx, a); err != nil {
			return err
		}
		if shipment.Status == entity.ShipmentStatusWarehouseEntry {
			return nil
		}
		if err := shipmentRepo.UpdateStatus(ctx, shipment.ID, entity.ShipmentStatusWarehouseEntry); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.StatusChange{
			ID:             uuid.New().String(),
			ShipmentID:     shipment.ID,
			PreviousStatus: shipment.Status,
			NewStatus:      entity.ShipmentStatusWarehouseEntry,
			Notes:          fmt.Sprintf("D.A. %s criada (%s)", number, a.WarehouseType),
			ChangedBy:      userID,
			ChangedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AdmissionCreated(a.WarehouseType)
	uc.log.Info().
		Str("admission_id", a.ID).
		Str("declaration_number", a.DeclarationNumber).
		Str("shipment_id", a.ShipmentID).
		Int("items", len(a.Items)).
		Str("expiry_date", a.ExpiryDate.Format(dto.DateLayout)).
		Msg("D.A. criada")

	out := toAdmissionDTO(a, now)
	return &out, nil
}

// seedBalance cria os itens de saldo na ordem das invoices e de seus itens.
// Devolve também o valor total da mercadoria (soma dos totais das invoices).
func seedBalance(admissionID string, invoices []*entity.Invoice) ([]*entity.BalanceItem, decimal.Decimal) {
	total := decimal.Zero
	var items []*entity.BalanceItem
	for _, inv := range invoices {
		total = total.Add(inv.TotalValue)
		for _, it := range inv.Items {
			items = append(items, &entity.BalanceItem{
				ID:                 uuid.New().String(),
				AdmissionID:        admissionID,
				Position:           len(items) + 1,
				InvoiceID:          inv.ID,
				InvoiceNumber:      inv.Number,
				ProductCode:        it.ProductCode,
				Description:        it.Description,
				NCM:                it.NCM,
				Batch:              it.Batch,
				Unit:               it.Unit,
				QuantityOriginal:   it.Quantity,
				QuantityWithdrawn:  decimal.Zero,
				QuantityAvailable:  it.Quantity,
				NetWeightOriginal:  it.NetWeight,
				NetWeightWithdrawn: decimal.Zero,
				NetWeightAvailable: it.NetWeight,
				UnitValue:          it.UnitValue,
				ValueAvailable:     it.Quantity.Mul(it.UnitValue),
			})
		}
	}
	return items, total
}

// Get devolve a D.A. com itens, status resolvido e totais derivados.
func (uc *AdmissionUseCase) Get(ctx context.Context, id string) (*dto.AdmissionDTO, error) {
	a, err := uc.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toAdmissionDTO(a, uc.clock.Now())
	return &out, nil
}

// List filtra por tipo, status resolvido e busca sem acentos; pagina em memória.
func (uc *AdmissionUseCase) List(ctx context.Context, in dto.AdmissionFilterRequest) (*dto.AdmissionListResponse, error) {
	if in.WarehouseType != "" && !entity.IsValidWarehouseType(in.WarehouseType) {
		return nil, fmt.Errorf("%w: tipo de entreposto inválido %q", domain.ErrInvalidInput, in.WarehouseType)
	}
	switch in.Status {
	case "", entity.AdmissionStatusActive, entity.AdmissionStatusExpired, entity.AdmissionStatusFinalized:
	default:
		return nil, fmt.Errorf("%w: status inválido %q", domain.ErrInvalidInput, in.Status)
	}
	in.PageRequest.Normalize(defaultAdmissionPageSize)

	all, err := uc.admissionRepo.List(ctx, repository.AdmissionFilter{WarehouseType: in.WarehouseType})
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	matched := make([]dto.AdmissionDTO, 0, len(all))
	for _, a := range all {
		if in.Status != "" && rules.ResolveStatus(a, now) != in.Status {
			continue
		}
		if !textutil.ContainsFold(in.Search, a.DeclarationNumber, a.ShipmentReference, a.ExporterName) {
			continue
		}
		matched = append(matched, toAdmissionDTO(a, now))
	}
	start, end := in.PageRequest.Bounds(len(matched))
	return &dto.AdmissionListResponse{
		Items: matched[start:end],
		Page:  dto.NewPageResponse(in.PageRequest, len(matched)),
	}, nil
}

// ListByShipment devolve as D.A. de um embarque. NotFound se o embarque não existe.
func (uc *AdmissionUseCase) ListByShipment(ctx context.Context, shipmentID string) ([]dto.AdmissionDTO, error) {
	if _, err := uc.shipmentRepo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	list, err := uc.admissionRepo.List(ctx, repository.AdmissionFilter{ShipmentID: shipmentID})
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	out := make([]dto.AdmissionDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAdmissionDTO(a, now))
	}
	return out, nil
}

// GetBalance devolve todos os itens de saldo em ordem de criação.
func (uc *AdmissionUseCase) GetBalance(ctx context.Context, id string) (*dto.BalanceResponse, error) {
	return uc.balance(ctx, id, false)
}

// GetAvailableBalance devolve só os itens com quantidade disponível > 0.
func (uc *AdmissionUseCase) GetAvailableBalance(ctx context.Context, id string) (*dto.BalanceResponse, error) {
	return uc.balance(ctx, id, true)
}

func (uc *AdmissionUseCase) balance(ctx context.Context, id string, onlyAvailable bool) (*dto.BalanceResponse, error) {
	a, err := uc.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		AdmissionID:       a.ID,
		DeclarationNumber: a.DeclarationNumber,
		Status:            rules.ResolveStatus(a, uc.clock.Now()),
		ExpiryDate:        a.ExpiryDate.Format(dto.DateLayout),
		Items:             toBalanceItemDTOs(a.Items, onlyAvailable),
	}, nil
}
