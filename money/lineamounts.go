package money

import "github.com/kpalka/fakturaapp/errs"

// LineAmounts holds the three integer grosze values derived for one invoice
// line.
type LineAmounts struct {
	NetGrosze   int64
	VATGrosze   int64
	GrossGrosze int64
}

// ComputeLineAmounts derives net/VAT/gross grosze for one line from its unit
// price, quantity and VAT rate. It returns a VALIDATION error if the
// multiplication would overflow an int64 rather than silently wrapping.
func ComputeLineAmounts(unitPriceGrosze int64, quantityMilli int64, rate VATRate) (LineAmounts, error) {
	if unitPriceGrosze != 0 && quantityMilli > (1<<62)/unitPriceGrosze {
		return LineAmounts{}, errs.New(errs.Validation, "line amount too large: unit price %d x quantity %d overflows", unitPriceGrosze, quantityMilli)
	}
	net := RoundHalfUp(unitPriceGrosze*quantityMilli, 1000)

	var vat int64
	if rate.IsNumeric() {
		vat = RoundHalfUp(net*int64(rate.Percent()), 100)
	}
	return LineAmounts{
		NetGrosze:   net,
		VATGrosze:   vat,
		GrossGrosze: net + vat,
	}, nil
}

// InvoiceTotals holds the three grand totals of an invoice.
type InvoiceTotals struct {
	SubtotalGrosze int64
	TaxGrosze      int64
	TotalGrosze    int64
}

// ComputeInvoiceTotals sums the given line amounts independently: subtotal =
// Σnet, tax = Σvat, total = Σgross. By construction total == subtotal+tax.
func ComputeInvoiceTotals(lines []LineAmounts) InvoiceTotals {
	var t InvoiceTotals
	for _, l := range lines {
		t.SubtotalGrosze += l.NetGrosze
		t.TaxGrosze += l.VATGrosze
		t.TotalGrosze += l.GrossGrosze
	}
	return t
}
