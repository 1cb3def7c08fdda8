package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

func TestFormatNumber(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"2.45":      "2,45",
		"11760":     "11.760,00",
		"1234567.8": "1.234.567,80",
		"-4500":     "-4.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatNumber(decimal.RequireFromString(in), 2), in)
	}
	assert.Equal(t, "23.912", formatNumber(decimal.RequireFromString("23912"), 0))
}

func TestWithdrawalReceipt_GeneratesPDF(t *testing.T) {
	reg := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	a := &entity.Admission{
		ID:                "adm-1",
		DeclarationNumber: "DA-2025-0001",
		ShipmentReference: "BIO-2025-001",
		ExporterName:      "ChemCorp Industries Ltd",
		WarehouseType:     entity.WarehouseTypeCLIA,
		RegistrationDate:  reg,
		ExpiryDate:        reg.AddDate(0, 0, 180),
		Currency:          "USD",
		Items: []*entity.BalanceItem{{
			ID: "bi-1", ProductCode: "YD-8238", Description: "Corante amarelo", Unit: "KG",
			ValueAvailable: decimal.RequireFromString("23912"),
		}},
	}
	w := &entity.Withdrawal{
		ID:             "wd-1",
		AdmissionID:    "adm-1",
		DocumentNumber: "DF-2025-0001",
		WithdrawnAt:    time.Date(2025, 2, 1, 14, 30, 0, 0, time.UTC),
		CreatedBy:      "magnus@biocol.com.br",
		Items: []*entity.WithdrawalItem{{
			ID: "wi-1", BalanceItemID: "bi-1", ProductCode: "YD-8238",
			Quantity:  decimal.RequireFromString("1000"),
			NetWeight: decimal.RequireFromString("1000"),
			Value:     decimal.RequireFromString("2450"),
		}},
	}

	out, err := NewReceiptGenerator("").WithdrawalReceipt(context.Background(), a, w)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
