// Package pdf genera el PDF de facturas y cotizaciones con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + VKN         │  FATURA/TEKLİF N° + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email / IBAN                      │
//	│  CLIENTE: Nombre + VKN/TCKN + vergi dairesi                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Miktar | Açıklama | Birim fiyat | KDV | Tutar        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ara toplam / KDV / GENEL TOPLAM                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al enlace público + notas                        │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

var _ ports.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Números con separadores turcos: 1.234,50
var printer = message.NewPrinter(language.Turkish)

// La fuente base solo cubre cp1252; las letras turcas fuera de ese juego se aproximan.
var latinizer = strings.NewReplacer(
	"ş", "s", "Ş", "S", "ğ", "g", "Ğ", "G", "ı", "i", "İ", "I",
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF de una factura o cotización y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *ports.PDFDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	company := doc.Company
	if company == nil {
		company = &entity.CompanyProfile{}
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(pdfText(title(doc.Kind)+" "+doc.Number), true).
		WithAuthor(pdfText(company.Name), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(company))
	m.AddRows(customerRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: agencia + VKN (izq) y número + fechas (der).
func headerRow(doc *ports.PDFDocument, company *entity.CompanyProfile) core.Row {
	dates := "Tarih: " + doc.IssueDate.Format("02.01.2006")
	if doc.DueDate != nil {
		label := "Vade"
		if doc.Kind == ports.DocumentQuote {
			label = "Geçerlilik"
		}
		dates += "   " + label + ": " + doc.DueDate.Format("02.01.2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(pdfText(nonEmpty(company.Name, "—")), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(pdfText("VKN: "+nonEmpty(company.TaxNumber, "—")+"   "+company.TaxOffice), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(pdfText(strings.ToUpper(title(doc.Kind))), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(pdfText(dates), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func issuerRow(company *entity.CompanyProfile) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(pdfText(fmt.Sprintf("Adres: %s   |   Tel: %s   |   E-posta: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			)), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(pdfText("IBAN: "+nonEmpty(company.IBAN, "—")), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	if c == nil {
		c = &entity.Customer{}
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SAYIN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(pdfText(nonEmpty(c.Name, "—")), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(pdfText(fmt.Sprintf("VKN/TCKN: %s   |   Vergi dairesi: %s   |   %s",
				nonEmpty(c.TaxNumber, "—"),
				nonEmpty(c.TaxOffice, "—"),
				c.Address,
			)), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(pdfText(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Miktar", 1, align.Center),
		h("Açıklama", 5, align.Left),
		h("Birim fiyat", 2, align.Right),
		h("KDV %", 1, align.Center),
		h("Tutar", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(doc *ports.PDFDocument) []core.Row {
	rows := make([]core.Row, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(
				formatQuantity(l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				pdfText(l.Description),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.UnitPrice, doc.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				"%"+l.TaxRate.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.LineTotal, doc.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *ports.PDFDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(pdfText(s), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(pdfText(s), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
		})
	}
	taxNote := "Fiyatlara KDV hariçtir"
	if doc.PricesIncludeTax {
		taxNote = "Fiyatlara KDV dahildir"
	}

	return row.New(26).Add(
		col.New(4).Add(text.New(pdfText(taxNote), props.Text{Size: 7, Color: colorGray, Top: 1})),
		col.New(4).Add(
			label("Ara toplam:"),
			text.New(pdfText("KDV:"), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			grandLabel("GENEL TOPLAM:"),
		),
		col.New(4).Add(
			value(formatMoney(doc.Subtotal, doc.Currency)),
			text.New(formatMoney(doc.TaxAmount, doc.Currency), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			grandValue(formatMoney(doc.Total, doc.Currency)),
		),
	)
}

// footerRows: QR al enlace público y notas.
func footerRows(doc *ports.PDFDocument) []core.Row {
	var rows []core.Row
	if doc.PublicURL != "" {
		rows = append(rows, row.New(40).Add(
			col.New(3).Add(code.NewQr(doc.PublicURL, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(pdfText("Belgeyi çevrimiçi görüntülemek için QR kodu okutun."), props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New(doc.PublicURL, props.Text{Size: 7, Top: 10, Left: 3, Color: colorPrimary}),
			),
		))
	}
	if doc.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New(pdfText("Notlar: "+doc.Notes), props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func title(kind string) string {
	if kind == ports.DocumentQuote {
		return "Teklif"
	}
	return "Fatura"
}

func pdfText(s string) string {
	return latinizer.Replace(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney 1234.5 → "1.234,50 TRY".
func formatMoney(d decimal.Decimal, currency string) string {
	s := printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func formatQuantity(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.String()
	}
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}
