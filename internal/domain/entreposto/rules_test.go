package entreposto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func newItem(qty, weight, unit string) *entity.BalanceItem {
	return &entity.BalanceItem{
		ProductCode:        "YD-8238",
		QuantityOriginal:   d(qty),
		QuantityWithdrawn:  decimal.Zero,
		QuantityAvailable:  d(qty),
		NetWeightOriginal:  d(weight),
		NetWeightWithdrawn: decimal.Zero,
		NetWeightAvailable: d(weight),
		UnitValue:          d(unit),
		ValueAvailable:     d(qty).Mul(d(unit)),
	}
}

func TestExpiryDate_180Dias(t *testing.T) {
	assert.Equal(t, date(2025, time.July, 14), entreposto.ExpiryDate(date(2025, time.January, 15)))
	assert.Equal(t, date(2024, time.September, 18), entreposto.ExpiryDate(date(2024, time.March, 22)))
}

func TestExpiryDate_IgnoraHorario(t *testing.T) {
	sp := time.FixedZone("BRT", -3*3600)
	reg := time.Date(2025, time.January, 15, 23, 30, 0, 0, sp)
	assert.Equal(t, date(2025, time.July, 14), entreposto.ExpiryDate(reg))
}

func TestResolveStatus(t *testing.T) {
	a := &entity.Admission{
		Status:     entity.AdmissionStatusActive,
		ExpiryDate: date(2025, time.July, 14),
	}

	t.Run("ultimo dia ainda ativo", func(t *testing.T) {
		now := time.Date(2025, time.July, 14, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, entity.AdmissionStatusActive, entreposto.ResolveStatus(a, now))
	})

	t.Run("dia seguinte vencido", func(t *testing.T) {
		now := time.Date(2025, time.July, 15, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, entity.AdmissionStatusExpired, entreposto.ResolveStatus(a, now))
	})

	t.Run("finalizado e terminal", func(t *testing.T) {
		fin := &entity.Admission{Status: entity.AdmissionStatusFinalized, ExpiryDate: a.ExpiryDate}
		now := date(2026, time.January, 1)
		assert.Equal(t, entity.AdmissionStatusFinalized, entreposto.ResolveStatus(fin, now))
	})

	t.Run("usa data civil do fuso de negocio", func(t *testing.T) {
		sp := time.FixedZone("BRT", -3*3600)
		// 15/07 01:00 UTC ainda é 14/07 em São Paulo.
		now := time.Date(2025, time.July, 15, 1, 0, 0, 0, time.UTC).In(sp)
		assert.Equal(t, entity.AdmissionStatusActive, entreposto.ResolveStatus(a, now))
	})
}

func TestDaysToExpiry(t *testing.T) {
	a := &entity.Admission{ExpiryDate: date(2025, time.July, 14)}
	assert.Equal(t, 10, entreposto.DaysToExpiry(a, date(2025, time.July, 4)))
	assert.Equal(t, 0, entreposto.DaysToExpiry(a, date(2025, time.July, 14)))
	assert.Equal(t, -1, entreposto.DaysToExpiry(a, date(2025, time.July, 15)))

	antiga := &entity.Admission{ExpiryDate: entreposto.ExpiryDate(entreposto.MinRegistrationDate)}
	assert.Equal(t, -9011, entreposto.DaysToExpiry(antiga, date(2025, time.March, 1)))
}

func TestCheckRegistrationDate(t *testing.T) {
	today := date(2025, time.March, 1)

	assert.NoError(t, entreposto.CheckRegistrationDate(today, today))
	assert.NoError(t, entreposto.CheckRegistrationDate(entreposto.MinRegistrationDate, today))

	err := entreposto.CheckRegistrationDate(date(2025, time.March, 2), today)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, entreposto.CheckRegistrationDate(date(1, time.January, 1), today), domain.ErrInvalidInput)
	assert.ErrorIs(t, entreposto.CheckRegistrationDate(date(9999, time.December, 31), today), domain.ErrInvalidInput)

	// hoje no fuso de negocio, mesmo que em UTC ja seja amanha
	sp := time.FixedZone("BRT", -3*3600)
	late := time.Date(2025, time.March, 1, 23, 0, 0, 0, sp)
	assert.NoError(t, entreposto.CheckRegistrationDate(date(2025, time.March, 1), late))
}

func TestProportionalWeight(t *testing.T) {
	w := entreposto.ProportionalWeight(d("2000"), d("11760"), d("11760"))
	assert.True(t, w.Equal(d("2000")), "esperado 2000, obtido %s", w)

	w = entreposto.ProportionalWeight(d("10"), d("40"), d("1000"))
	assert.True(t, w.Equal(d("250")), "esperado 250, obtido %s", w)

	assert.True(t, entreposto.ProportionalWeight(d("1"), decimal.Zero, d("10")).IsZero())
}

func TestCheckAvailability(t *testing.T) {
	item := newItem("100", "50", "2")

	require.NoError(t, entreposto.CheckAvailability(item, d("100")))

	err := entreposto.CheckAvailability(item, d("100.001"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
	assert.Contains(t, err.Error(), "YD-8238")

	err = entreposto.CheckAvailability(item, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	err = entreposto.CheckAvailability(item, d("-1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
}

func TestApplyWithdrawal_Conservacao(t *testing.T) {
	item := newItem("11760", "11760", "1.85")

	weight, value := entreposto.ApplyWithdrawal(item, d("2000"))

	assert.True(t, weight.Equal(d("2000")))
	assert.True(t, value.Equal(d("3700")))
	assert.True(t, item.QuantityAvailable.Equal(d("9760")))
	assert.True(t, item.QuantityWithdrawn.Add(item.QuantityAvailable).Equal(item.QuantityOriginal))
	assert.True(t, item.NetWeightWithdrawn.Add(item.NetWeightAvailable).Equal(item.NetWeightOriginal))
	assert.True(t, item.ValueAvailable.Equal(d("18056")))
}

func TestApplyWithdrawal_ZeraPesoSemResiduo(t *testing.T) {
	item := newItem("3", "10", "1")

	for i := 0; i < 3; i++ {
		require.NoError(t, entreposto.CheckAvailability(item, d("1")))
		entreposto.ApplyWithdrawal(item, d("1"))
	}

	assert.True(t, item.QuantityAvailable.IsZero())
	assert.True(t, item.NetWeightAvailable.IsZero(), "peso restante: %s", item.NetWeightAvailable)
	assert.True(t, item.NetWeightWithdrawn.Equal(d("10")))
	assert.True(t, item.ValueAvailable.IsZero())
}

func TestApplyWithdrawal_SemDerivaEmMuitasRetiradas(t *testing.T) {
	item := newItem("1000", "1000", "0.1")

	for i := 0; i < 1000; i++ {
		entreposto.ApplyWithdrawal(item, d("1"))
	}

	assert.True(t, item.QuantityAvailable.IsZero())
	assert.True(t, item.ValueAvailable.IsZero(), "valor restante: %s", item.ValueAvailable)
}

func TestTotals(t *testing.T) {
	items := []*entity.BalanceItem{newItem("10", "5", "2"), newItem("5", "1", "3")}
	assert.True(t, entreposto.TotalAvailable(items).Equal(d("15")))
	assert.True(t, entreposto.TotalValueAvailable(items).Equal(d("35")))
}
