package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/application/analytics"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
)

func newDashboard(t *testing.T, now time.Time) *analytics.DashboardUseCase {
	t.Helper()
	store := memory.NewStore()
	_, err := seed.Load(context.Background(), memory.SeedRepositories(store))
	require.NoError(t, err)
	return analytics.NewDashboardUseCase(memory.NewDashboardRepository(store), clock.Fixed(now, time.UTC))
}

func TestMetrics_SeededData(t *testing.T) {
	uc := newDashboard(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC))

	m, err := uc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, m.TotalShipments)
	assert.Equal(t, 4, m.InProgressShipments)
	assert.Equal(t, 5, m.DelayedShipments)
	assert.True(t, decimal.RequireFromString("174468.80").Equal(m.TotalFreight), m.TotalFreight.String())
	assert.Equal(t, 2, m.ActiveAdmissions)
	assert.Zero(t, m.ExpiredAdmissions)
	assert.True(t, m.BondedValue.IsPositive())
}

func TestMetrics_AdmissionsExpireAfterValidity(t *testing.T) {
	uc := newDashboard(t, time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))

	m, err := uc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.ActiveAdmissions)
	assert.Equal(t, 1, m.ExpiredAdmissions)
}

func TestStatusCounts_AllColumns(t *testing.T) {
	uc := newDashboard(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	counts, err := uc.StatusCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(entity.ShipmentStatuses))
	byStatus := map[string]int{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, 2, byStatus[entity.ShipmentStatusWarehouseEntry])
	assert.Equal(t, 1, byStatus[entity.ShipmentStatusPreShipment])
	assert.Zero(t, byStatus[entity.ShipmentStatusDelivered])
}

func TestUpcomingActions_Priorities(t *testing.T) {
	uc := newDashboard(t, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))

	actions, err := uc.UpcomingActions(context.Background())
	require.NoError(t, err)
	require.Len(t, actions, 2)

	assert.Equal(t, "DA-2025-0001", actions[0].Reference)
	assert.Equal(t, "2025-07-14", actions[0].DueDate)
	assert.Equal(t, 13, actions[0].DaysRemaining)
	assert.Equal(t, dto.PriorityMedium, actions[0].Priority)

	assert.Equal(t, "DA-2025-0002", actions[1].Reference)
	assert.Equal(t, dto.PriorityLow, actions[1].Priority)
}

func TestUpcomingActions_ArrivingShipment(t *testing.T) {
	uc := newDashboard(t, time.Date(2025, 2, 25, 9, 0, 0, 0, time.UTC))

	actions, err := uc.UpcomingActions(context.Background())
	require.NoError(t, err)

	var arriving []dto.UpcomingActionDTO
	for _, a := range actions {
		if a.Type == "embarque" {
			arriving = append(arriving, a)
		}
	}
	require.Len(t, arriving, 1)
	assert.Equal(t, "BIO-2025-003", arriving[0].Reference)
	assert.Equal(t, 3, arriving[0].DaysRemaining)
	assert.Equal(t, dto.PriorityHigh, arriving[0].Priority)
}
