package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
	"github.com/jhoicas/biocol-import-api/pkg/textutil"
)

const defaultShipmentPageSize = 10

// ShipmentUseCase CRUD de embarques e transições do kanban.
type ShipmentUseCase struct {
	txRunner      ShipmentTxRunner
	repo          repository.ShipmentRepository
	historyRepo   repository.StatusHistoryRepository
	invoiceRepo   repository.InvoiceRepository
	referenceRepo repository.ReferenceRepository
	clock         clock.Clock
}

// NewShipmentUseCase constrói o caso de uso.
func NewShipmentUseCase(
	txRunner ShipmentTxRunner,
	repo repository.ShipmentRepository,
	historyRepo repository.StatusHistoryRepository,
	invoiceRepo repository.InvoiceRepository,
	referenceRepo repository.ReferenceRepository,
	clk clock.Clock,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner:      txRunner,
		repo:          repo,
		historyRepo:   historyRepo,
		invoiceRepo:   invoiceRepo,
		referenceRepo: referenceRepo,
		clock:         clk,
	}
}

func validImportType(s string) bool {
	return s == entity.ImportTypeOwnAccount || s == entity.ImportTypeViaTrade
}

func validBusinessUnit(s string) bool {
	return s == entity.BusinessUnitCeara || s == entity.BusinessUnitSantaCatarina
}

// checkExporter exige que o exportador exista nos cadastros quando houver algum cadastrado.
func (uc *ShipmentUseCase) checkExporter(ctx context.Context, exporterID string) error {
	if exporterID == "" {
		return nil
	}
	n, err := uc.referenceRepo.CountActive(ctx, entity.ReferenceKindExporters)
	if err != nil || n == 0 {
		return err
	}
	ref, err := uc.referenceRepo.GetByID(ctx, exporterID)
	if err != nil || ref.Kind != entity.ReferenceKindExporters {
		return fmt.Errorf("%w: exportador %s não cadastrado", domain.ErrInvalidInput, exporterID)
	}
	return nil
}

// Create cria o embarque em PRE_EMBARQUE.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentDTO, error) {
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		return nil, fmt.Errorf("%w: número de referência é obrigatório", domain.ErrInvalidInput)
	}
	if !validImportType(in.ImportType) {
		return nil, fmt.Errorf("%w: tipo de importação inválido %q", domain.ErrInvalidInput, in.ImportType)
	}
	if !validBusinessUnit(in.BusinessUnit) {
		return nil, fmt.Errorf("%w: unidade inválida %q", domain.ErrInvalidInput, in.BusinessUnit)
	}
	freight := decimal.Zero
	if in.Freight != nil {
		freight = *in.Freight
	}
	if err := requireNonNegative("frete", freight); err != nil {
		return nil, err
	}
	dep, err := parseDate("data de embarque", in.ExpectedDepartureDate)
	if err != nil {
		return nil, err
	}
	eta, err := parseDate("data de ETA", in.ExpectedArrivalDate)
	if err != nil {
		return nil, err
	}
	if err := uc.checkExporter(ctx, in.ExporterID); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsReference(ctx, ref, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: referência %s já existe", domain.ErrConflict, ref)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := uc.clock.Now()
	sh := &entity.Shipment{
		ID:                    uuid.New().String(),
		Reference:             ref,
		ImportType:            in.ImportType,
		BusinessUnit:          in.BusinessUnit,
		ExporterID:            in.ExporterID,
		Carrier:               strings.TrimSpace(in.Carrier),
		Freight:               freight,
		Currency:              currency,
		OriginPortID:          in.OriginPortID,
		DestinationPortID:     in.DestinationPortID,
		ExpectedDepartureDate: dep,
		ExpectedArrivalDate:   eta,
		Status:                entity.ShipmentStatusPreShipment,
		Notes:                 strings.TrimSpace(in.Notes),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	created, err := uc.repo.GetByID(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	out := toShipmentDTO(created)
	return &out, nil
}

// Get devolve o embarque com suas invoices.
func (uc *ShipmentUseCase) Get(ctx context.Context, id string) (*dto.ShipmentDTO, error) {
	sh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toShipmentDTO(sh)
	out.Invoices = make([]dto.InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, toInvoiceDTO(inv))
	}
	return &out, nil
}

// Update atualização parcial. O status só muda via ChangeStatus.
func (uc *ShipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentDTO, error) {
	sh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Reference != nil {
		ref := strings.TrimSpace(*in.Reference)
		if ref == "" {
			return nil, fmt.Errorf("%w: número de referência é obrigatório", domain.ErrInvalidInput)
		}
		exists, err := uc.repo.ExistsReference(ctx, ref, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: referência %s já existe", domain.ErrConflict, ref)
		}
		sh.Reference = ref
	}
	if in.ImportType != nil {
		if !validImportType(*in.ImportType) {
			return nil, fmt.Errorf("%w: tipo de importação inválido %q", domain.ErrInvalidInput, *in.ImportType)
		}
		sh.ImportType = *in.ImportType
	}
	if in.BusinessUnit != nil {
		if !validBusinessUnit(*in.BusinessUnit) {
			return nil, fmt.Errorf("%w: unidade inválida %q", domain.ErrInvalidInput, *in.BusinessUnit)
		}
		sh.BusinessUnit = *in.BusinessUnit
	}
	if in.ExporterID != nil {
		if err := uc.checkExporter(ctx, *in.ExporterID); err != nil {
			return nil, err
		}
		sh.ExporterID = *in.ExporterID
	}
	if in.Carrier != nil {
		sh.Carrier = strings.TrimSpace(*in.Carrier)
	}
	if in.Freight != nil {
		if err := requireNonNegative("frete", *in.Freight); err != nil {
			return nil, err
		}
		sh.Freight = *in.Freight
	}
	if in.Currency != nil {
		sh.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.OriginPortID != nil {
		sh.OriginPortID = *in.OriginPortID
	}
	if in.DestinationPortID != nil {
		sh.DestinationPortID = *in.DestinationPortID
	}
	if in.ExpectedDepartureDate != nil {
		if sh.ExpectedDepartureDate, err = parseDate("data de embarque", *in.ExpectedDepartureDate); err != nil {
			return nil, err
		}
	}
	if in.ExpectedArrivalDate != nil {
		if sh.ExpectedArrivalDate, err = parseDate("data de ETA", *in.ExpectedArrivalDate); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		sh.Notes = strings.TrimSpace(*in.Notes)
	}
	sh.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, sh); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toShipmentDTO(updated)
	return &out, nil
}

// Delete remove o embarque. Conflict se houver D.A. vinculada.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List filtra, busca (sem acentos) e pagina; mais recentes primeiro.
func (uc *ShipmentUseCase) List(ctx context.Context, in dto.ShipmentFilterRequest) (*dto.ShipmentListResponse, error) {
	if in.Status != "" && !entity.IsValidShipmentStatus(in.Status) {
		return nil, fmt.Errorf("%w: status inválido %q", domain.ErrInvalidInput, in.Status)
	}
	if in.BusinessUnit != "" && !validBusinessUnit(in.BusinessUnit) {
		return nil, fmt.Errorf("%w: unidade inválida %q", domain.ErrInvalidInput, in.BusinessUnit)
	}
	if in.ImportType != "" && !validImportType(in.ImportType) {
		return nil, fmt.Errorf("%w: tipo de importação inválido %q", domain.ErrInvalidInput, in.ImportType)
	}
	in.PageRequest.Normalize(defaultShipmentPageSize)

	list, err := uc.repo.List(ctx, repository.ShipmentFilter{
		BusinessUnit: in.BusinessUnit,
		Status:       in.Status,
		ImportType:   in.ImportType,
	})
	if err != nil {
		return nil, err
	}
	matched := make([]dto.ShipmentDTO, 0, len(list))
	for _, sh := range list {
		if !textutil.ContainsFold(in.Search, sh.Reference, sh.Carrier, sh.ExporterName) {
			continue
		}
		matched = append(matched, toShipmentDTO(sh))
	}
	start, end := in.PageRequest.Bounds(len(matched))
	return &dto.ShipmentListResponse{
		Items: matched[start:end],
		Page:  dto.NewPageResponse(in.PageRequest, len(matched)),
	}, nil
}

// ChangeStatus move o embarque no kanban e grava o histórico na mesma transação.
func (uc *ShipmentUseCase) ChangeStatus(ctx context.Context, id, userID string, in dto.ChangeStatusRequest) (*dto.ShipmentDTO, error) {
	if !entity.IsValidShipmentStatus(in.Status) {
		return nil, fmt.Errorf("%w: status inválido %q", domain.ErrInvalidInput, in.Status)
	}
	sh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status == in.Status {
		return nil, fmt.Errorf("%w: embarque já está em %s", domain.ErrInvalidInput, in.Status)
	}
	now := uc.clock.Now()
	err = uc.txRunner.RunShipment(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		historyRepo repository.StatusHistoryRepository,
	) error {
		if err := shipmentRepo.UpdateStatus(ctx, id, in.Status); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.StatusChange{
			ID:             uuid.New().String(),
			ShipmentID:     id,
			PreviousStatus: sh.Status,
			NewStatus:      in.Status,
			Notes:          strings.TrimSpace(in.Notes),
			ChangedBy:      userID,
			ChangedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	sh.Status = in.Status
	sh.UpdatedAt = now
	out := toShipmentDTO(sh)
	return &out, nil
}

// History transições do embarque, mais recente primeiro.
func (uc *ShipmentUseCase) History(ctx context.Context, id string) ([]dto.StatusChangeDTO, error) {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.historyRepo.ListByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusChangeDTO, 0, len(list))
	for _, c := range list {
		out = append(out, dto.StatusChangeDTO{
			ID:             c.ID,
			PreviousStatus: c.PreviousStatus,
			NewStatus:      c.NewStatus,
			Notes:          c.Notes,
			ChangedBy:      c.ChangedBy,
			ChangedAt:      c.ChangedAt,
		})
	}
	return out, nil
}

// Statuses colunas do kanban em ordem.
func (uc *ShipmentUseCase) Statuses() []dto.StatusOptionDTO {
	out := make([]dto.StatusOptionDTO, 0, len(entity.ShipmentStatuses))
	for _, s := range entity.ShipmentStatuses {
		out = append(out, dto.StatusOptionDTO{Key: s, Value: s, Label: entity.StatusLabel(s)})
	}
	return out
}

func toShipmentDTO(sh *entity.Shipment) dto.ShipmentDTO {
	return dto.ShipmentDTO{
		ID:                    sh.ID,
		Reference:             sh.Reference,
		ImportType:            sh.ImportType,
		BusinessUnit:          sh.BusinessUnit,
		ExporterID:            sh.ExporterID,
		ExporterName:          sh.ExporterName,
		Carrier:               sh.Carrier,
		Freight:               sh.Freight,
		Currency:              sh.Currency,
		OriginPortID:          sh.OriginPortID,
		DestinationPortID:     sh.DestinationPortID,
		ExpectedDepartureDate: formatDate(sh.ExpectedDepartureDate),
		ExpectedArrivalDate:   formatDate(sh.ExpectedArrivalDate),
		Status:                sh.Status,
		StatusLabel:           entity.StatusLabel(sh.Status),
		Notes:                 sh.Notes,
		CreatedAt:             sh.CreatedAt,
		UpdatedAt:             sh.UpdatedAt,
	}
}

