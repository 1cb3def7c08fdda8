// Package pdf gera o comprovante de retirada (nacionalização parcial) de uma D.A.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Empresa         │  N° D.F. + Data da retirada   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  D.A.: número / embarque / exportador / entreposto / prazo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Descrição | Qtde | Un | Peso líq. | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: peso e valor retirados / saldo atual da D.A.        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: QR de conferência + observações                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ entreposto.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa entreposto.ReceiptGenerator com Maroto v2.
type ReceiptGenerator struct {
	company string
}

// NewReceiptGenerator constrói o gerador; company aparece no cabeçalho.
func NewReceiptGenerator(company string) *ReceiptGenerator {
	if company == "" {
		company = "Biocol"
	}
	return &ReceiptGenerator{company: company}
}

// WithdrawalReceipt gera o PDF e devolve seus bytes.
func (g *ReceiptGenerator) WithdrawalReceipt(
	_ context.Context,
	a *entity.Admission,
	w *entity.Withdrawal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de retirada "+w.DocumentNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(w))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(admissionRow(a))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(a, w)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(a, w))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(a, w))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(w *entity.Withdrawal) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Entreposto aduaneiro", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE RETIRADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("D.F. "+w.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+w.WithdrawnAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func admissionRow(a *entity.Admission) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("DECLARAÇÃO DE ADMISSÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("D.A. "+a.DeclarationNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Embarque: %s   |   Exportador: %s",
				nonEmpty(a.ShipmentReference, "-"),
				nonEmpty(a.ExporterName, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Entreposto: "+a.WarehouseType, props.Text{
				Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Registro: "+a.RegistrationDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New("Vencimento: "+a.ExpiryDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 11,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Qtde", 2, align.Right),
		h("Un", 1, align.Center),
		h("Peso líq.", 1, align.Right),
		h("Valor", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows uma linha por item retirado; descrição e unidade vêm do saldo da D.A.
func tableRows(a *entity.Admission, w *entity.Withdrawal) []core.Row {
	byID := make(map[string]*entity.BalanceItem, len(a.Items))
	for _, it := range a.Items {
		byID[it.ID] = it
	}
	cell := func(s string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: al, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(w.Items))
	for _, it := range w.Items {
		desc, unit := "", ""
		if b, ok := byID[it.BalanceItemID]; ok {
			desc, unit = b.Description, b.Unit
		}
		out = append(out, row.New(7).Add(
			cell(it.ProductCode, 2, align.Left),
			cell(desc, 4, align.Left),
			cell(formatNumber(it.Quantity, 2), 2, align.Right),
			cell(unit, 1, align.Center),
			cell(formatNumber(it.NetWeight, 2), 1, align.Right),
			cell(a.Currency+" "+formatNumber(it.Value, 2), 2, align.Right),
		))
	}
	return out
}

func totalsRow(a *entity.Admission, w *entity.Withdrawal) core.Row {
	weight, value := decimal.Zero, decimal.Zero
	for _, it := range w.Items {
		weight = weight.Add(it.NetWeight)
		value = value.Add(it.Value)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value9 := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Peso líquido retirado:"),
			label("Valor retirado:"),
			label("Saldo disponível da D.A.:"),
		),
		col.New(4).Add(
			value9(formatNumber(weight, 2)+" kg"),
			value9(a.Currency+" "+formatNumber(value, 2)),
			value9(a.Currency+" "+formatNumber(rules.TotalValueAvailable(a.Items), 2)),
		),
	)
}

// footerRow QR com os identificadores para conferência e as observações.
func footerRow(a *entity.Admission, w *entity.Withdrawal) core.Row {
	qr := fmt.Sprintf("DA=%s;DF=%s;ID=%s", a.DeclarationNumber, w.DocumentNumber, w.ID)
	notes := strings.TrimSpace(w.Notes)
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Observações", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New(nonEmpty(notes, "-"), props.Text{Size: 8, Top: 10, Left: 3}),
			text.New("Retirada registrada por "+nonEmpty(w.CreatedBy, "-"), props.Text{
				Size: 7, Top: 30, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatNumber formata no padrão brasileiro: 11760.5 -> "11.760,50".
func formatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		return sign + string(buf) + "," + frac
	}
	return sign + string(buf)
}
