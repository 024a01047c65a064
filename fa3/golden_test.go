package fa3

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kpalka/fakturaapp/money"
)

// TestMarshal_RoundTripsThroughXML guards the codec's field order/shape
// with a structural diff instead of brittle string-equality on the raw XML.
func TestMarshal_RoundTripsThroughXML(t *testing.T) {
	rate := money.VATRate8
	amounts, err := money.ComputeLineAmounts(8000, 2500, rate)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	in := Input{
		Currency: "PLN", IssueDate: "2026-01-15", SaleDate: "2026-01-15",
		InvoiceNumber: "FV/2026/01/0002",
		Seller:        baseSeller(),
		Buyer:         baseBuyer(),
		Lines: []Line{
			{Name: "Usługa B", Unit: "h", Quantity: "2.5", UnitPriceGrosze: 8000, Rate: rate, Amounts: amounts},
		},
		Totals: money.ComputeInvoiceTotals([]money.LineAmounts{amounts}),
		Now:    fixedNow(),
	}

	doc, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	raw, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var roundTripped Faktura
	if err := xml.Unmarshal(raw, &roundTripped); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	// Unmarshal records the parsed root name, which Build leaves unset.
	if roundTripped.XMLName.Space != Namespace || roundTripped.XMLName.Local != "Faktura" {
		t.Fatalf("root element = %+v, want {%s Faktura}", roundTripped.XMLName, Namespace)
	}
	roundTripped.XMLName = doc.XMLName

	if diff := cmp.Diff(*doc, roundTripped); diff != "" {
		t.Fatalf("document does not round-trip through XML (-want +got):\n%s", diff)
	}
}
