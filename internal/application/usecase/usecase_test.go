package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
)

type suite struct {
	shipments  *usecase.ShipmentUseCase
	invoices   *usecase.InvoiceUseCase
	references *usecase.ReferenceUseCase
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	store := memory.NewStore()
	loaded, err := seed.Load(context.Background(), memory.SeedRepositories(store))
	require.NoError(t, err)
	require.True(t, loaded)

	clk := clock.Fixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), time.UTC)
	runner := memory.NewTxRunner(store)
	shipRepo := memory.NewShipmentRepository(store)
	invRepo := memory.NewInvoiceRepository(store)
	refRepo := memory.NewReferenceRepository(store)
	return &suite{
		shipments:  usecase.NewShipmentUseCase(runner, shipRepo, memory.NewStatusHistoryRepository(store), invRepo, refRepo, clk),
		invoices:   usecase.NewInvoiceUseCase(runner, invRepo, shipRepo, clk),
		references: usecase.NewReferenceUseCase(refRepo, clk),
	}
}

func strPtr(s string) *string { return &s }

func TestShipmentList_FiltersSearchAndPagination(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	all, err := s.shipments.List(ctx, dto.ShipmentFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Page.Total)
	assert.Equal(t, "BIO-2025-005", all.Items[0].Reference)

	byExporter, err := s.shipments.List(ctx, dto.ShipmentFilterRequest{Search: "CHEMCORP"})
	require.NoError(t, err)
	require.Len(t, byExporter.Items, 2)
	for _, it := range byExporter.Items {
		assert.Equal(t, "ChemCorp Industries Ltd", it.ExporterName)
	}

	ce, err := s.shipments.List(ctx, dto.ShipmentFilterRequest{BusinessUnit: entity.BusinessUnitCeara})
	require.NoError(t, err)
	assert.Equal(t, 3, ce.Page.Total)

	page, err := s.shipments.List(ctx, dto.ShipmentFilterRequest{PageRequest: dto.PageRequest{Page: 3, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Page.TotalPages)

	_, err = s.shipments.List(ctx, dto.ShipmentFilterRequest{Status: "NAVEGANDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShipmentCreate(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	out, err := s.shipments.Create(ctx, dto.CreateShipmentRequest{
		Reference:           "BIO-2025-010",
		ImportType:          entity.ImportTypeOwnAccount,
		BusinessUnit:        entity.BusinessUnitCeara,
		ExporterID:          seed.ID("exportadores:exp3"),
		ExpectedArrivalDate: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusPreShipment, out.Status)
	assert.Equal(t, "European Trading Co", out.ExporterName)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "2025-04-01", out.ExpectedArrivalDate)

	_, err = s.shipments.Create(ctx, dto.CreateShipmentRequest{
		Reference: "BIO-2025-001", ImportType: entity.ImportTypeOwnAccount, BusinessUnit: entity.BusinessUnitCeara,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.shipments.Create(ctx, dto.CreateShipmentRequest{
		Reference: "BIO-2025-011", ImportType: entity.ImportTypeOwnAccount, BusinessUnit: entity.BusinessUnitCeara,
		ExporterID: "nao-existe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.shipments.Create(ctx, dto.CreateShipmentRequest{
		Reference: "BIO-2025-012", ImportType: entity.ImportTypeOwnAccount, BusinessUnit: entity.BusinessUnitCeara,
		ExpectedArrivalDate: "01/04/2025",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShipmentUpdate_Partial(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	id := seed.ID("shipment:3")

	out, err := s.shipments.Update(ctx, id, dto.UpdateShipmentRequest{Carrier: strPtr("Hapag-Lloyd")})
	require.NoError(t, err)
	assert.Equal(t, "Hapag-Lloyd", out.Carrier)
	assert.Equal(t, "BIO-2025-003", out.Reference)
	assert.Equal(t, entity.ShipmentStatusPreShipment, out.Status)

	_, err = s.shipments.Update(ctx, id, dto.UpdateShipmentRequest{Reference: strPtr("BIO-2025-002")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.shipments.Update(ctx, "nao-existe", dto.UpdateShipmentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentChangeStatus_RecordsHistory(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	id := seed.ID("shipment:3")

	out, err := s.shipments.ChangeStatus(ctx, id, "user-1", dto.ChangeStatusRequest{
		Status: entity.ShipmentStatusLoadedOnBoard,
		Notes:  "container lacrado",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carregado Bordo", out.StatusLabel)

	hist, err := s.shipments.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.ShipmentStatusPreShipment, hist[0].PreviousStatus)
	assert.Equal(t, entity.ShipmentStatusLoadedOnBoard, hist[0].NewStatus)
	assert.Equal(t, "user-1", hist[0].ChangedBy)

	_, err = s.shipments.ChangeStatus(ctx, id, "user-1", dto.ChangeStatusRequest{Status: entity.ShipmentStatusLoadedOnBoard})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.shipments.ChangeStatus(ctx, id, "user-1", dto.ChangeStatusRequest{Status: "ATRACADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShipmentDelete(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	err := s.shipments.Delete(ctx, seed.ID("shipment:1"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, s.shipments.Delete(ctx, seed.ID("shipment:3")))
	_, err = s.shipments.Get(ctx, seed.ID("shipment:3"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentStatuses_KanbanOrder(t *testing.T) {
	s := newSuite(t)
	st := s.shipments.Statuses()
	require.Len(t, st, len(entity.ShipmentStatuses))
	assert.Equal(t, dto.StatusOptionDTO{Key: "PRE_EMBARQUE", Value: "PRE_EMBARQUE", Label: "Pre Embarque"}, st[0])
}

func TestInvoiceLifecycle(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	shipID := seed.ID("shipment:3")

	inv, err := s.invoices.Create(ctx, shipID, dto.CreateInvoiceRequest{
		Number:     "ETC-2025-77",
		TotalValue: decimal.RequireFromString("5000"),
		Items: []dto.InvoiceItemRequest{
			{ProductCode: "MX-10", Unit: "UN", Quantity: decimal.RequireFromString("4"), UnitValue: decimal.RequireFromString("1250")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Equal(t, "2025-03-01", inv.IssueDate)
	require.Len(t, inv.Items, 1)
	assert.True(t, decimal.RequireFromString("5000").Equal(inv.Items[0].TotalValue))

	_, err = s.invoices.Create(ctx, shipID, dto.CreateInvoiceRequest{Number: "ETC-2025-77"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.invoices.Create(ctx, shipID, dto.CreateInvoiceRequest{
		Number: "ETC-2025-78",
		Items:  []dto.InvoiceItemRequest{{ProductCode: "MX-11"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	item, err := s.invoices.AddItem(ctx, inv.ID, dto.InvoiceItemRequest{
		ProductCode: "MX-20", Quantity: decimal.RequireFromString("2"), UnitValue: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20").Equal(item.TotalValue))

	items, err := s.invoices.ListItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = s.invoices.UpdateItem(ctx, seed.ID("invoice:inv1"), item.ID, dto.InvoiceItemRequest{
		ProductCode: "MX-20", Quantity: decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.invoices.DeleteItem(ctx, inv.ID, item.ID))

	updated, err := s.invoices.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{Notes: strPtr("revisada")})
	require.NoError(t, err)
	assert.Equal(t, "revisada", updated.Notes)
	assert.Equal(t, "ETC-2025-77", updated.Number)

	detail, err := s.shipments.Get(ctx, shipID)
	require.NoError(t, err)
	require.Len(t, detail.Invoices, 1)
	assert.Len(t, detail.Invoices[0].Items, 1)

	require.NoError(t, s.invoices.Delete(ctx, inv.ID))
	_, err = s.invoices.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReferences(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	exporters, err := s.references.List(ctx, entity.ReferenceKindExporters, false)
	require.NoError(t, err)
	require.Len(t, exporters, 3)
	assert.Equal(t, "ChemCorp Industries Ltd", exporters[0].Name)

	_, err = s.references.Create(ctx, entity.ReferenceKindExporters, dto.ReferenceRequest{Code: "exp1", Name: "Outro"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.references.List(ctx, "navios", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := s.references.Create(ctx, entity.ReferenceKindCarriers, dto.ReferenceRequest{Code: "HAPAG", Name: "Hapag-Lloyd"})
	require.NoError(t, err)
	assert.True(t, created.Active)

	// tipo errado para o id
	_, err = s.references.Update(ctx, entity.ReferenceKindPorts, created.ID, dto.ReferenceRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.references.Deactivate(ctx, entity.ReferenceKindCarriers, created.ID))
	active, err := s.references.List(ctx, entity.ReferenceKindCarriers, false)
	require.NoError(t, err)
	assert.Len(t, active, 5)
	all, err := s.references.List(ctx, entity.ReferenceKindCarriers, true)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
