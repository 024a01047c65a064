// Package pdfrender produces the fixed A4 invoice PDF, using gofpdf the way
// a plain Cell/Ln layout renders an invoice top to bottom, with no HTML/CSS
// step.
package pdfrender

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/kpalka/fakturaapp/money"
)

// Party is the seller or buyer block rendered side by side under the title.
type Party struct {
	Name       string
	NIP        string
	Street     string
	PostalCode string
	City       string
	Email      string
	Phone      string
}

// Line is a single invoice-line row of the items table.
type Line struct {
	Name            string
	Quantity        string
	Unit            string
	UnitPriceGrosze int64
	Rate            money.VATRate
	NetGrosze       int64
	GrossGrosze     int64
}

// Invoice is everything the layout needs to render one PDF.
type Invoice struct {
	InvoiceNumber   string
	IssueDate       string
	SaleDate        string
	PaymentDeadline string
	PaymentMethod   string // already localised label
	Currency        string
	Seller          Party
	Buyer           Party
	Lines           []Line
	Totals          money.InvoiceTotals
	BankAccount     string // optional
	Notes           string // optional
}

const (
	marginLR = 18.0
	pageW    = 210.0
	colW     = (pageW - 2*marginLR - 10) / 2
)

// Renderer renders Invoice values to PDF bytes.
type Renderer struct {
	Font FontResolver
}

// NewRenderer constructs a Renderer with the given font-resolver capability.
func NewRenderer(font FontResolver) *Renderer {
	return &Renderer{Font: font}
}

// Render produces the complete single-page A4 PDF body for inv.
func (r *Renderer) Render(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLR, 16, marginLR)
	pdf.AddPage()

	family := r.setupFont(pdf)

	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 10, "FAKTURA VAT", "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 11)
	pdf.CellFormat(0, 7, inv.InvoiceNumber, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.renderParties(pdf, family, inv.Seller, inv.Buyer)
	r.renderTerms(pdf, family, inv)
	r.renderItemsTable(pdf, family, inv)
	r.renderTotals(pdf, family, inv.Totals)

	if inv.BankAccount != "" {
		pdf.Ln(3)
		pdf.SetFont(family, "", 9)
		pdf.CellFormat(0, 5, "Numer konta: "+inv.BankAccount, "", 1, "L", false, 0, "")
	}
	if inv.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont(family, "", 9)
		pdf.MultiCell(0, 5, "Uwagi: "+inv.Notes, "", "L", false)
	}

	pdf.SetY(-20)
	pdf.SetFont(family, "I", 8)
	pdf.CellFormat(0, 5, "Dokument wygenerowany automatycznie, nie wymaga podpisu.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdfrender: render: %w", err)
	}
	return buf.Bytes(), nil
}

// setupFont registers the resolved TrueType font, when one is found, so
// Polish diacritics render correctly; otherwise it falls back to gofpdf's
// built-in Arial core font, which also covers the case where even the
// monospace TTF candidate is absent.
func (r *Renderer) setupFont(pdf *gofpdf.Fpdf) string {
	if r.Font == nil {
		return "Arial"
	}
	path := r.Font.Resolve()
	if path == "" {
		return "Arial"
	}
	pdf.AddUTF8Font("Invoice", "", path)
	pdf.AddUTF8Font("Invoice", "B", path)
	pdf.AddUTF8Font("Invoice", "I", path)
	return "Invoice"
}

func (r *Renderer) renderParties(pdf *gofpdf.Fpdf, family string, seller, buyer Party) {
	y := pdf.GetY()
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(colW, 6, "Sprzedawca", "", 0, "L", false, 0, "")
	pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Nabywca", "", 1, "L", false, 0, "")

	pdf.SetFont(family, "", 9)
	sellerLines := partyLines(seller)
	buyerLines := partyLines(buyer)
	for i := 0; i < max(len(sellerLines), len(buyerLines)); i++ {
		pdf.SetXY(marginLR, pdf.GetY())
		if i < len(sellerLines) {
			pdf.CellFormat(colW, 5, sellerLines[i], "", 0, "L", false, 0, "")
		} else {
			pdf.CellFormat(colW, 5, "", "", 0, "L", false, 0, "")
		}
		pdf.CellFormat(10, 5, "", "", 0, "L", false, 0, "")
		if i < len(buyerLines) {
			pdf.CellFormat(colW, 5, buyerLines[i], "", 1, "L", false, 0, "")
		} else {
			pdf.CellFormat(colW, 5, "", "", 1, "L", false, 0, "")
		}
	}
	_ = y
	pdf.Ln(3)
}

func partyLines(p Party) []string {
	lines := []string{p.Name, "NIP: " + p.NIP}
	if p.Street != "" {
		lines = append(lines, p.Street)
	}
	if p.PostalCode != "" || p.City != "" {
		lines = append(lines, p.PostalCode+" "+p.City)
	}
	if p.Email != "" {
		lines = append(lines, "E-mail: "+p.Email)
	}
	if p.Phone != "" {
		lines = append(lines, "Tel: "+p.Phone)
	}
	return lines
}

func (r *Renderer) renderTerms(pdf *gofpdf.Fpdf, family string, inv Invoice) {
	pdf.SetFont(family, "", 9)
	row := func(label, value string) {
		pdf.CellFormat(45, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, value, "", 1, "L", false, 0, "")
	}
	row("Data wystawienia:", inv.IssueDate)
	row("Data sprzedaży:", inv.SaleDate)
	if inv.PaymentDeadline != "" {
		row("Termin płatności:", inv.PaymentDeadline)
	}
	row("Sposób płatności:", inv.PaymentMethod)
	row("Waluta:", inv.Currency)
	pdf.Ln(3)
}

var tableCols = []float64{10, 52, 18, 16, 24, 18, 24, 24}
var tableHeaders = []string{"Lp.", "Nazwa", "Ilość", "J.m.", "Cena netto", "VAT", "Netto", "Brutto"}

func (r *Renderer) renderItemsTable(pdf *gofpdf.Fpdf, family string, inv Invoice) {
	pdf.SetFont(family, "B", 8)
	for i, h := range tableHeaders {
		pdf.CellFormat(tableCols[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	for i, line := range inv.Lines {
		rate := rateLabel(line.Rate)
		cells := []string{
			fmt.Sprintf("%d", i+1),
			line.Name,
			line.Quantity,
			line.Unit,
			money.FormatMoney(line.UnitPriceGrosze),
			rate,
			money.FormatMoney(line.NetGrosze),
			money.FormatMoney(line.GrossGrosze),
		}
		for j, c := range cells {
			align := "L"
			if j == 0 || j >= 2 {
				align = "C"
			}
			pdf.CellFormat(tableCols[j], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// rateLabel formats a VAT rate for display: numeric rates get a "%" suffix,
// alphabetic markers are shown as-is.
func rateLabel(r money.VATRate) string {
	if r.IsNumeric() {
		return fmt.Sprintf("%d%%", r.Percent())
	}
	return r.String()
}

func (r *Renderer) renderTotals(pdf *gofpdf.Fpdf, family string, totals money.InvoiceTotals) {
	pdf.Ln(2)
	pdf.SetFont(family, "B", 9)
	row := func(label string, grosze int64) {
		pdf.CellFormat(pageW-2*marginLR-45, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, money.FormatMoney(grosze), "", 1, "R", false, 0, "")
	}
	row("Netto:", totals.SubtotalGrosze)
	row("VAT:", totals.TaxGrosze)
	row("Brutto:", totals.TotalGrosze)
}
