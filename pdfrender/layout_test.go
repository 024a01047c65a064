package pdfrender

import (
	"bytes"
	"testing"

	"github.com/kpalka/fakturaapp/money"
)

type noFonts struct{}

func (noFonts) Resolve() string { return "" }

func TestRender_ProducesPDFBytes(t *testing.T) {
	rate := money.VATRate23
	amounts, err := money.ComputeLineAmounts(10000, 1000, rate)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}

	inv := Invoice{
		InvoiceNumber: "FV/2026/01/0001",
		IssueDate:     "2026-01-15",
		SaleDate:      "2026-01-15",
		PaymentMethod: "Przelew",
		Currency:      "PLN",
		Seller:        Party{Name: "Jan Kowalski", NIP: "1234563218", Street: "ul. Polna 1", PostalCode: "00-001", City: "Warszawa"},
		Buyer:         Party{Name: "ACME Sp. z o.o.", NIP: "9876543210"},
		Lines: []Line{
			{Name: "A", Quantity: "1", Unit: "szt", UnitPriceGrosze: 10000, Rate: rate,
				NetGrosze: amounts.NetGrosze, GrossGrosze: amounts.GrossGrosze},
		},
		Totals: money.ComputeInvoiceTotals([]money.LineAmounts{amounts}),
	}

	r := NewRenderer(noFonts{})
	data, err := r.Render(inv)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		n := len(data)
		if n > 8 {
			n = 8
		}
		t.Fatalf("output does not look like a PDF, starts with %q", data[:n])
	}
}
