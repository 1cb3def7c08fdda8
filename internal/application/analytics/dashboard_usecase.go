// Package analytics contém os casos de uso do painel de acompanhamento
// de embarques e do entreposto.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
)

const (
	expiringWindowDays = 30 // D.A. que vencem nos próximos 30 dias
	arrivingWindowDays = 7  // embarques com ETA nos próximos 7 dias
)

// DashboardUseCase agrega métricas de embarques e D.A.
//
// Fonte de dados: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	clock clock.Clock
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, clk clock.Clock) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, clock: clk}
}

// Metrics monta os cartões do painel.
//
// Duas consultas em paralelo:
//  1. ShipmentTotals(hoje)
//  2. AdmissionTotals(hoje)
//
// A contagem por status fica em StatusCounts.
func (uc *DashboardUseCase) Metrics(ctx context.Context) (*dto.DashboardMetricsDTO, error) {
	today := uc.clock.Today()

	type shipmentResult struct {
		totals repository.ShipmentTotals
		err    error
	}
	type admissionResult struct {
		totals repository.AdmissionTotals
		err    error
	}

	shipCh := make(chan shipmentResult, 1)
	admCh := make(chan admissionResult, 1)

	go func() {
		t, err := uc.repo.ShipmentTotals(ctx, today)
		shipCh <- shipmentResult{t, err}
	}()
	go func() {
		t, err := uc.repo.AdmissionTotals(ctx, today)
		admCh <- admissionResult{t, err}
	}()

	ship := <-shipCh
	adm := <-admCh

	if ship.err != nil {
		return nil, fmt.Errorf("dashboard: embarques: %w", ship.err)
	}
	if adm.err != nil {
		return nil, fmt.Errorf("dashboard: entreposto: %w", adm.err)
	}

	return &dto.DashboardMetricsDTO{
		TotalShipments:      ship.totals.Total,
		InProgressShipments: ship.totals.InProgress,
		DelayedShipments:    ship.totals.Delayed,
		TotalFreight:        ship.totals.TotalFreight.Round(2),
		ActiveAdmissions:    adm.totals.Active,
		ExpiredAdmissions:   adm.totals.Expired,
		FinalizedAdmissions: adm.totals.Finalized,
		BondedValue:         adm.totals.ValueAvailable.Round(2),
	}, nil
}

// StatusCounts uma entrada por coluna do kanban, inclusive as vazias.
func (uc *DashboardUseCase) StatusCounts(ctx context.Context) ([]dto.StatusCountDTO, error) {
	counts, err := uc.repo.CountShipmentsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: status: %w", err)
	}
	out := make([]dto.StatusCountDTO, 0, len(entity.ShipmentStatuses))
	for _, s := range entity.ShipmentStatuses {
		out = append(out, dto.StatusCountDTO{Status: s, Label: entity.StatusLabel(s), Count: counts[s]})
	}
	return out, nil
}

// UpcomingActions D.A. perto do vencimento e embarques perto da chegada,
// ordenados pelo prazo.
func (uc *DashboardUseCase) UpcomingActions(ctx context.Context) ([]dto.UpcomingActionDTO, error) {
	today := uc.clock.Today()

	type admissionsResult struct {
		list []*entity.Admission
		err  error
	}
	type shipmentsResult struct {
		list []*entity.Shipment
		err  error
	}
	admCh := make(chan admissionsResult, 1)
	shipCh := make(chan shipmentsResult, 1)

	go func() {
		l, err := uc.repo.ExpiringAdmissions(ctx, today, today.AddDate(0, 0, expiringWindowDays))
		admCh <- admissionsResult{l, err}
	}()
	go func() {
		l, err := uc.repo.ArrivingShipments(ctx, today, today.AddDate(0, 0, arrivingWindowDays))
		shipCh <- shipmentsResult{l, err}
	}()

	adm := <-admCh
	ship := <-shipCh
	if adm.err != nil {
		return nil, fmt.Errorf("dashboard: vencimentos: %w", adm.err)
	}
	if ship.err != nil {
		return nil, fmt.Errorf("dashboard: chegadas: %w", ship.err)
	}

	out := make([]dto.UpcomingActionDTO, 0, len(adm.list)+len(ship.list))
	for _, a := range adm.list {
		days := rules.DaysToExpiry(a, today)
		out = append(out, dto.UpcomingActionDTO{
			Type:          "entreposto",
			EntityID:      a.ID,
			Reference:     a.DeclarationNumber,
			Action:        "Nacionalizar saldo da D.A.",
			DueDate:       a.ExpiryDate.Format(dto.DateLayout),
			DaysRemaining: days,
			Priority:      priority(days),
		})
	}
	for _, sh := range ship.list {
		days := daysBetween(today, *sh.ExpectedArrivalDate)
		out = append(out, dto.UpcomingActionDTO{
			Type:          "embarque",
			EntityID:      sh.ID,
			Reference:     sh.Reference,
			Action:        "Acompanhar chegada",
			DueDate:       sh.ExpectedArrivalDate.Format(dto.DateLayout),
			DaysRemaining: days,
			Priority:      priority(days),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysRemaining < out[j].DaysRemaining })
	return out, nil
}

// priority alta até 7 dias, média até 15, baixa depois disso.
func priority(days int) string {
	switch {
	case days <= 7:
		return dto.PriorityHigh
	case days <= 15:
		return dto.PriorityMedium
	default:
		return dto.PriorityLow
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
