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
)

// InvoiceUseCase invoices comerciais de um embarque e suas linhas.
// Os itens alimentam o saldo inicial da D.A.; editar depois da admissão não altera o saldo.
type InvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	repo         repository.InvoiceRepository
	shipmentRepo repository.ShipmentRepository
	clock        clock.Clock
}

// NewInvoiceUseCase constrói o caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	repo repository.InvoiceRepository,
	shipmentRepo repository.ShipmentRepository,
	clk clock.Clock,
) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, repo: repo, shipmentRepo: shipmentRepo, clock: clk}
}

// ListByShipment invoices do embarque com itens.
func (uc *InvoiceUseCase) ListByShipment(ctx context.Context, shipmentID string) ([]dto.InvoiceDTO, error) {
	if _, err := uc.shipmentRepo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceDTO, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceDTO(inv))
	}
	return out, nil
}

// Get invoice com itens.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceDTO, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toInvoiceDTO(inv)
	return &out, nil
}

// Create grava a invoice e as linhas numa única transação.
func (uc *InvoiceUseCase) Create(ctx context.Context, shipmentID string, in dto.CreateInvoiceRequest) (*dto.InvoiceDTO, error) {
	sh, err := uc.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: número da invoice é obrigatório", domain.ErrInvalidInput)
	}
	if err := requireNonNegative("valor total", in.TotalValue); err != nil {
		return nil, err
	}
	issue, err := parseDate("data de emissão", in.IssueDate)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsNumber(ctx, shipmentID, number, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: invoice %s já existe no embarque %s", domain.ErrConflict, number, sh.Reference)
	}

	now := uc.clock.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		ShipmentID: shipmentID,
		Number:     number,
		Type:       strings.TrimSpace(in.Type),
		IssueDate:  uc.clock.Today(),
		Currency:   strings.ToUpper(strings.TrimSpace(in.Currency)),
		TotalValue: in.TotalValue,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if issue != nil {
		inv.IssueDate = *issue
	}
	if inv.Currency == "" {
		inv.Currency = sh.Currency
	}
	for _, req := range in.Items {
		item, err := buildInvoiceItem(inv.ID, req)
		if err != nil {
			return nil, err
		}
		item.CreatedAt = now
		inv.Items = append(inv.Items, item)
	}

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := toInvoiceDTO(inv)
	return &out, nil
}

// Update atualização parcial do cabeçalho.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceDTO, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Number != nil {
		number := strings.TrimSpace(*in.Number)
		if number == "" {
			return nil, fmt.Errorf("%w: número da invoice é obrigatório", domain.ErrInvalidInput)
		}
		exists, err := uc.repo.ExistsNumber(ctx, inv.ShipmentID, number, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: invoice %s já existe no embarque", domain.ErrConflict, number)
		}
		inv.Number = number
	}
	if in.Type != nil {
		inv.Type = strings.TrimSpace(*in.Type)
	}
	if in.IssueDate != nil {
		issue, err := parseDate("data de emissão", *in.IssueDate)
		if err != nil {
			return nil, err
		}
		if issue != nil {
			inv.IssueDate = *issue
		}
	}
	if in.Currency != nil {
		inv.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.TotalValue != nil {
		if err := requireNonNegative("valor total", *in.TotalValue); err != nil {
			return nil, err
		}
		inv.TotalValue = *in.TotalValue
	}
	if in.Notes != nil {
		inv.Notes = strings.TrimSpace(*in.Notes)
	}
	inv.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	out := toInvoiceDTO(inv)
	return &out, nil
}

// Delete remove a invoice e seus itens.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ListItems linhas da invoice.
func (uc *InvoiceUseCase) ListItems(ctx context.Context, invoiceID string) ([]dto.InvoiceItemDTO, error) {
	if _, err := uc.repo.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	items, err := uc.repo.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceItemDTOs(items), nil
}

// AddItem inclui uma linha na invoice.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceItemDTO, error) {
	if _, err := uc.repo.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	item, err := buildInvoiceItem(invoiceID, in)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = uc.clock.Now()
	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	out := toInvoiceItemDTO(item)
	return &out, nil
}

// UpdateItem substitui os campos da linha.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, invoiceID, itemID string, in dto.InvoiceItemRequest) (*dto.InvoiceItemDTO, error) {
	current, err := uc.itemOf(ctx, invoiceID, itemID)
	if err != nil {
		return nil, err
	}
	item, err := buildInvoiceItem(invoiceID, in)
	if err != nil {
		return nil, err
	}
	item.ID = current.ID
	item.CreatedAt = current.CreatedAt
	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	out := toInvoiceItemDTO(item)
	return &out, nil
}

// DeleteItem remove a linha.
func (uc *InvoiceUseCase) DeleteItem(ctx context.Context, invoiceID, itemID string) error {
	if _, err := uc.itemOf(ctx, invoiceID, itemID); err != nil {
		return err
	}
	return uc.repo.DeleteItem(ctx, itemID)
}

func (uc *InvoiceUseCase) itemOf(ctx context.Context, invoiceID, itemID string) (*entity.InvoiceItem, error) {
	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.InvoiceID != invoiceID {
		return nil, fmt.Errorf("%w: item %s na invoice %s", domain.ErrNotFound, itemID, invoiceID)
	}
	return item, nil
}

// buildInvoiceItem valida a linha; sem valor total usa quantidade × valor unitário.
func buildInvoiceItem(invoiceID string, in dto.InvoiceItemRequest) (*entity.InvoiceItem, error) {
	code := strings.TrimSpace(in.ProductCode)
	if code == "" {
		return nil, fmt.Errorf("%w: código do produto é obrigatório", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantidade do produto %s deve ser maior que zero", domain.ErrInvalidInput, code)
	}
	for field, v := range map[string]decimal.Decimal{
		"peso líquido":   in.NetWeight,
		"peso bruto":     in.GrossWeight,
		"valor unitário": in.UnitValue,
	} {
		if err := requireNonNegative(field, v); err != nil {
			return nil, err
		}
	}
	total := in.Quantity.Mul(in.UnitValue)
	if in.TotalValue != nil {
		if err := requireNonNegative("valor total", *in.TotalValue); err != nil {
			return nil, err
		}
		total = *in.TotalValue
	}
	return &entity.InvoiceItem{
		ID:          uuid.New().String(),
		InvoiceID:   invoiceID,
		ProductCode: code,
		Description: strings.TrimSpace(in.Description),
		NCM:         strings.TrimSpace(in.NCM),
		Batch:       strings.TrimSpace(in.Batch),
		Unit:        strings.TrimSpace(in.Unit),
		Quantity:    in.Quantity,
		NetWeight:   in.NetWeight,
		GrossWeight: in.GrossWeight,
		UnitValue:   in.UnitValue,
		TotalValue:  total,
	}, nil
}

func toInvoiceDTO(inv *entity.Invoice) dto.InvoiceDTO {
	return dto.InvoiceDTO{
		ID:         inv.ID,
		ShipmentID: inv.ShipmentID,
		Number:     inv.Number,
		Type:       inv.Type,
		IssueDate:  formatDate(&inv.IssueDate),
		Currency:   inv.Currency,
		TotalValue: inv.TotalValue,
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
		Items:      toInvoiceItemDTOs(inv.Items),
	}
}

func toInvoiceItemDTOs(items []*entity.InvoiceItem) []dto.InvoiceItemDTO {
	out := make([]dto.InvoiceItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toInvoiceItemDTO(it))
	}
	return out
}

func toInvoiceItemDTO(it *entity.InvoiceItem) dto.InvoiceItemDTO {
	return dto.InvoiceItemDTO{
		ID:          it.ID,
		InvoiceID:   it.InvoiceID,
		ProductCode: it.ProductCode,
		Description: it.Description,
		NCM:         it.NCM,
		Batch:       it.Batch,
		Unit:        it.Unit,
		Quantity:    it.Quantity,
		NetWeight:   it.NetWeight,
		GrossWeight: it.GrossWeight,
		UnitValue:   it.UnitValue,
		TotalValue:  it.TotalValue,
	}
}
