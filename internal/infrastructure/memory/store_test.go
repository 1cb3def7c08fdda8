package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	loaded, err := seed.Load(context.Background(), memory.SeedRepositories(s))
	require.NoError(t, err)
	require.True(t, loaded)
	return s
}

func TestSeed_Idempotente(t *testing.T) {
	s := seeded(t)

	loaded, err := seed.Load(context.Background(), memory.SeedRepositories(s))
	require.NoError(t, err)
	assert.False(t, loaded)

	list, err := memory.NewShipmentRepository(s).List(context.Background(), repository.ShipmentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, "BIO-2025-005", list[0].Reference, "mais recente primeiro")
}

func TestSeed_SaldoDaDA0001(t *testing.T) {
	s := seeded(t)
	a, err := memory.NewAdmissionRepository(s).GetByID(context.Background(), seed.ID("admission:ent1"))
	require.NoError(t, err)

	require.Len(t, a.Items, 2)
	yd := a.Items[0]
	assert.Equal(t, "YD-8238", yd.ProductCode)
	assert.True(t, yd.QuantityAvailable.Equal(decimal.NewFromInt(9760)))
	assert.True(t, yd.ValueAvailable.Equal(decimal.RequireFromString("23912")))
	assert.Equal(t, "Maersk Line", mustShipment(t, s, a.ShipmentID).Carrier)
}

func mustShipment(t *testing.T, s *memory.Store, id string) *entity.Shipment {
	t.Helper()
	sh, err := memory.NewShipmentRepository(s).GetByID(context.Background(), id)
	require.NoError(t, err)
	return sh
}

func TestTxRunner_RollbackRestauraSnapshot(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	runner := memory.NewTxRunner(s)
	boom := errors.New("falha no meio")

	err := runner.Run(ctx, func(
		admissionRepo repository.AdmissionRepository,
		_ repository.WithdrawalRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.StatusHistoryRepository,
	) error {
		a, err := admissionRepo.GetForUpdate(ctx, seed.ID("admission:ent2"))
		require.NoError(t, err)
		a.Items[0].QuantityAvailable = decimal.Zero
		a.Items[0].QuantityWithdrawn = decimal.NewFromInt(1)
		require.NoError(t, admissionRepo.UpdateBalance(ctx, a))
		require.NoError(t, shipmentRepo.UpdateStatus(ctx, seed.ID("shipment:3"), "ENTREGUE"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := memory.NewAdmissionRepository(s).GetByID(ctx, seed.ID("admission:ent2"))
	require.NoError(t, err)
	assert.True(t, a.Items[0].QuantityAvailable.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "PRE_EMBARQUE", mustShipment(t, s, seed.ID("shipment:3")).Status)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.NewTxRunner(s).RunInvoice(ctx, func(repository.InvoiceRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRepos_DevolvemCopias(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	repo := memory.NewAdmissionRepository(s)

	a, err := repo.GetByID(ctx, seed.ID("admission:ent2"))
	require.NoError(t, err)
	a.Items[0].QuantityAvailable = decimal.Zero

	again, err := repo.GetByID(ctx, seed.ID("admission:ent2"))
	require.NoError(t, err)
	assert.True(t, again.Items[0].QuantityAvailable.Equal(decimal.NewFromInt(1)))
}

func TestShipmentDelete_ComDAVinculada(t *testing.T) {
	s := seeded(t)
	err := memory.NewShipmentRepository(s).Delete(context.Background(), seed.ID("shipment:1"))
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = memory.NewShipmentRepository(s).Delete(context.Background(), seed.ID("shipment:3"))
	assert.NoError(t, err)
}
