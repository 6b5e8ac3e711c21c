// Package pdf genera el comprobante de venta de una factura de mostrador.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Farmacia      │  Comprobante + Fecha  │
//	│  ───────────────────────────────────────────  │
//	│  ATENDIDO POR: nombre + username               │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Medicamento | Empaque | P.Unit  │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                 │
//	│  QR con el ID de la factura                    │
//	└───────────────────────────────────────────────┘
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

	appbilling "github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appbilling.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador. storeName encabeza el comprobante.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, receipt *appbilling.Receipt) ([]byte, error) {
	if receipt == nil || receipt.Bill == nil || receipt.Staff == nil || receipt.Medicine == nil {
		return nil, fmt.Errorf("pdf: comprobante incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, receipt.Bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(staffRow(receipt.Staff))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(receipt.Bill, receipt.Medicine))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(receipt.Bill))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(receipt.Bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la farmacia (izq) y N° de comprobante + fecha (der).
func headerRow(storeName string, bill *entity.Bill) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(bill.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+bill.CreatedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func staffRow(staff *entity.User) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("ATENDIDO POR", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", staff.FullName, staff.Username), props.Text{
				Size: 8, Top: 5,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Medicamento", 5, align.Left),
		h("Empaque", 2, align.Center),
		h("Precio Unit.", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// detailRow: una factura vende un único medicamento. El precio unitario se deriva del
// total para reflejar el precio vigente al momento de la venta.
func detailRow(bill *entity.Bill, medicine *entity.Medicine) core.Row {
	unit := bill.TotalPrice
	if bill.Quantity > 0 {
		unit = bill.TotalPrice.Div(decimal.NewFromInt(int64(bill.Quantity))).Round(2)
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", bill.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(medicine.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(bill.PackagingType.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("$"+formatMoney(unit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(bill.TotalPrice), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(bill *entity.Bill) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(bill.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("ID de factura:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3}),
			text.New(bill.ID, props.Text{Size: 6.5, Top: 9, Left: 3, Color: colorGray}),
			text.New("Conserve este comprobante. Las facturas no admiten modificaciones.", props.Text{
				Size: 6.5, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	)
}

// formatMoney formatea con punto de miles y coma decimal, siempre con 2 decimales.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// shortID primeros 8 caracteres del UUID, suficiente para identificar el comprobante a la vista.
func shortID(id string) string {
	if len(id) <= 8 {
		return strings.ToUpper(id)
	}
	return strings.ToUpper(id[:8])
}
