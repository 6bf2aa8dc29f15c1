// Package pdf genera el ticket de venta en PDF.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Tienda + contacto  │  N° + Fecha     │
//	│  ──────────────────────────────────────────  │
//	│  CLIENTE / MEDIO DE PAGO                      │
//	│  TABLA: Cant | Artículo | P.Unit | Total      │
//	│  ──────────────────────────────────────────  │
//	│  TOTAL                                        │
//	│  FOOTER: QR con el id de la venta + leyenda   │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/salmichou-pos/internal/application/ports"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 196, Green: 84, Blue: 132}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Etiquetas ─────────────────────────────────────────────────────────────────

type labels struct {
	Title, Date, Customer, Payment, Qty, Item, Unit, Total, Grand, Footer, Walkin string
	Methods                                                                       map[string]string
}

var labelsByLang = map[string]labels{
	"fr": {
		Title: "TICKET DE CAISSE", Date: "Date", Customer: "Client", Payment: "Paiement",
		Qty: "Qté", Item: "Article", Unit: "P.U.", Total: "Total", Grand: "TOTAL À PAYER",
		Footer: "Merci pour votre achat ! Les articles ne sont ni repris ni échangés sans ticket.",
		Walkin: "Client de passage",
		Methods: map[string]string{
			entity.PaymentCash: "Espèces", entity.PaymentCard: "Carte", entity.PaymentMobile: "Mobile Money",
		},
	},
	"en": {
		Title: "SALES RECEIPT", Date: "Date", Customer: "Customer", Payment: "Payment",
		Qty: "Qty", Item: "Item", Unit: "Unit", Total: "Total", Grand: "TOTAL DUE",
		Footer: "Thank you for your purchase! Items are not returned or exchanged without a receipt.",
		Walkin: "Walk-in customer",
		Methods: map[string]string{
			entity.PaymentCash: "Cash", entity.PaymentCard: "Card", entity.PaymentMobile: "Mobile Money",
		},
	},
}

func labelsFor(lang string) labels {
	if l, ok := labelsByLang[lang]; ok {
		return l
	}
	return labelsByLang["fr"]
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	shop ports.ShopInfo,
	language string,
) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nula")
	}
	l := labelsFor(language)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(l.Title, true).
		WithAuthor(shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, shop, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(l))
	m.AddRows(tableItemRows(sale.Items, language)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale, l, language))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(sale, l)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + contacto (izq) y N° de venta + fecha (der).
func headerRow(sale *entity.Sale, shop ports.ShopInfo, l labels) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(joinNonEmpty(shop.Address, shop.Phone), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(l.Title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(l.Date+": "+sale.CreatedAt.Local().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale *entity.Sale, l labels) core.Row {
	method := l.Methods[sale.PaymentMethod]
	if method == "" {
		method = sale.PaymentMethod
	}
	return row.New(10).Add(
		col.New(7).Add(text.New(l.Customer+": "+nonEmpty(sale.CustomerName, l.Walkin), props.Text{
			Size: 9, Top: 2,
		})),
		col.New(5).Add(text.New(l.Payment+": "+method, props.Text{
			Size: 9, Top: 2, Align: align.Right,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow(l labels) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(l.Qty, 1, align.Center),
		h(l.Item, 5, align.Left),
		h(l.Unit, 3, align.Right),
		h(l.Total, 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []entity.SaleItem, lang string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money.Format(it.Price, lang),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.Format(it.Total, lang),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(sale *entity.Sale, l labels, lang string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(l.Grand, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(money.Format(sale.TotalAmount, lang), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRows: QR con el id completo de la venta y leyenda.
func footerRows(sale *entity.Sale, l labels) []core.Row {
	return []core.Row{
		row.New(30).Add(
			col.New(4).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(text.New(l.Footer, props.Text{
				Size: 8, Top: 8, Left: 3, Color: colorGray,
			})),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "  |  " + b
}

// shortID primeros 8 caracteres del id (uuid) para el encabezado.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
