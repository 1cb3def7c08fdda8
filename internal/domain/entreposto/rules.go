// Package entreposto contém as regras puras do saldo em entreposto aduaneiro:
// prazo de vencimento, status derivado e cálculo proporcional das retiradas.
package entreposto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// ValidityDays prazo fixo de permanência da D.A. (contagem inclusiva: o dia 180 ainda é válido).
const ValidityDays = 180

// MinRegistrationDate primeira data de registro aceita.
var MinRegistrationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// civilDate reduz t à data civil no fuso do próprio t, representada à meia-noite UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpiryDate devolve a data de vencimento: data de registro + 180 dias corridos.
func ExpiryDate(registration time.Time) time.Time {
	return civilDate(registration).AddDate(0, 0, ValidityDays)
}

// CheckRegistrationDate aceita datas civis entre MinRegistrationDate e today, inclusive.
func CheckRegistrationDate(registration, today time.Time) error {
	reg := civilDate(registration)
	if reg.Before(MinRegistrationDate) || reg.After(civilDate(today)) {
		return fmt.Errorf("%w: data de registro %s fora do intervalo aceito (%s a %s)",
			domain.ErrInvalidInput, reg.Format(time.DateOnly),
			MinRegistrationDate.Format(time.DateOnly), civilDate(today).Format(time.DateOnly))
	}
	return nil
}

// ResolveStatus deriva o status na leitura.
// FINALIZADO é terminal; ATIVO vira VENCIDO quando a data civil de now passa do vencimento.
// now deve vir no fuso de negócio.
func ResolveStatus(a *entity.Admission, now time.Time) string {
	switch a.Status {
	case entity.AdmissionStatusFinalized, entity.AdmissionStatusExpired:
		return a.Status
	}
	if civilDate(now).After(civilDate(a.ExpiryDate)) {
		return entity.AdmissionStatusExpired
	}
	return entity.AdmissionStatusActive
}

// DaysToExpiry dias civis até o vencimento (negativo quando já venceu).
func DaysToExpiry(a *entity.Admission, now time.Time) int {
	return int(civilDate(a.ExpiryDate).Sub(civilDate(now)) / (24 * time.Hour))
}

// ProportionalWeight peso líquido correspondente a qty: (qty / qtyOriginal) × weightOriginal.
// Multiplica antes de dividir para não perder precisão em retiradas redondas.
func ProportionalWeight(qty, qtyOriginal, weightOriginal decimal.Decimal) decimal.Decimal {
	if qtyOriginal.IsZero() {
		return decimal.Zero
	}
	return qty.Mul(weightOriginal).Div(qtyOriginal)
}

// CheckAvailability valida 0 < qty <= disponível. A mensagem identifica o produto e as
// quantidades para que o operador corrija o pedido sem consultar logs.
func CheckAvailability(item *entity.BalanceItem, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: quantidade solicitada (%s) deve ser maior que zero para item %s",
			domain.ErrInvalidOperation, qty.String(), item.ProductCode)
	}
	if qty.GreaterThan(item.QuantityAvailable) {
		return fmt.Errorf("%w: quantidade solicitada (%s) maior que disponível (%s) para item %s",
			domain.ErrInvalidOperation, qty.String(), item.QuantityAvailable.String(), item.ProductCode)
	}
	return nil
}

// ApplyWithdrawal baixa qty do item já validado e devolve o que saiu.
// Quando a retirada zera a quantidade, o peso restante sai inteiro para que o
// resíduo de arredondamento da divisão proporcional não fique preso no saldo.
// O valor disponível é sempre subtração acumulada (qty × valor unitário).
func ApplyWithdrawal(item *entity.BalanceItem, qty decimal.Decimal) (weight, value decimal.Decimal) {
	item.QuantityWithdrawn = item.QuantityWithdrawn.Add(qty)
	item.QuantityAvailable = item.QuantityAvailable.Sub(qty)

	if item.QuantityAvailable.IsZero() {
		weight = item.NetWeightAvailable
	} else {
		weight = ProportionalWeight(qty, item.QuantityOriginal, item.NetWeightOriginal)
	}
	item.NetWeightWithdrawn = item.NetWeightWithdrawn.Add(weight)
	item.NetWeightAvailable = item.NetWeightAvailable.Sub(weight)

	value = qty.Mul(item.UnitValue)
	item.ValueAvailable = item.ValueAvailable.Sub(value)
	return weight, value
}

// TotalAvailable soma a quantidade disponível de todos os itens da D.A.
func TotalAvailable(items []*entity.BalanceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.QuantityAvailable)
	}
	return total
}

// TotalValueAvailable soma o valor disponível de todos os itens da D.A.
func TotalValueAvailable(items []*entity.BalanceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.ValueAvailable)
	}
	return total
}
