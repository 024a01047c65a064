package money_test

import (
	"testing"

	"github.com/kpalka/fakturaapp/money"
)

func TestParseFormatMoneyRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1.00"},
		{"1.5", "1.50"},
		{"1,5", "1.50"},
		{"0.01", "0.01"},
		{"123.45", "123.45"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			grosze, err := money.ParseMoney(tt.in)
			if err != nil {
				t.Fatalf("ParseMoney(%q): %v", tt.in, err)
			}
			got := money.FormatMoney(grosze)
			if got != tt.want {
				t.Errorf("FormatMoney(ParseMoney(%q)) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMoneyRejects(t *testing.T) {
	for _, in := range []string{"-1", "1.234", "abc", "1.", ".5", ""} {
		if _, err := money.ParseMoney(in); err == nil {
			t.Errorf("ParseMoney(%q) should have failed", in)
		}
	}
}

func TestParseQuantityRejectsNonPositive(t *testing.T) {
	for _, in := range []string{"0", "0.0", "-1"} {
		if _, err := money.ParseQuantity(in); err == nil {
			t.Errorf("ParseQuantity(%q) should have failed", in)
		}
	}
}

func TestNormaliseQuantity(t *testing.T) {
	tests := []struct{ in, want string }{
		{"01", "1"},
		{"1.500", "1.5"},
		{"1.000", "1"},
		{"2.5", "2.5"},
		{"007.10", "7.1"},
	}
	for _, tt := range tests {
		got, err := money.NormaliseQuantity(tt.in)
		if err != nil {
			t.Fatalf("NormaliseQuantity(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormaliseQuantity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineAmounts_SingleNumericRate(t *testing.T) {
	got, err := money.ComputeLineAmounts(10000, 1000, money.VATRate23)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	want := money.LineAmounts{NetGrosze: 10000, VATGrosze: 2300, GrossGrosze: 12300}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLineAmounts_MixedRatesAndTotalsAdditivity(t *testing.T) {
	a, err := money.ComputeLineAmounts(10000, 1000, money.VATRate23)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	b, err := money.ComputeLineAmounts(8000, 2500, money.VATRate8)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}

	wantA := money.LineAmounts{NetGrosze: 10000, VATGrosze: 2300, GrossGrosze: 12300}
	wantB := money.LineAmounts{NetGrosze: 20000, VATGrosze: 1600, GrossGrosze: 21600}
	if a != wantA {
		t.Errorf("line A: got %+v, want %+v", a, wantA)
	}
	if b != wantB {
		t.Errorf("line B: got %+v, want %+v", b, wantB)
	}

	totals := money.ComputeInvoiceTotals([]money.LineAmounts{a, b})
	wantTotals := money.InvoiceTotals{SubtotalGrosze: 30000, TaxGrosze: 3900, TotalGrosze: 33900}
	if totals != wantTotals {
		t.Errorf("totals: got %+v, want %+v", totals, wantTotals)
	}
}

func TestLineAmounts_Exempt(t *testing.T) {
	got, err := money.ComputeLineAmounts(5000, 3000, money.VATRateZW)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	want := money.LineAmounts{NetGrosze: 15000, VATGrosze: 0, GrossGrosze: 15000}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLineAmounts_HalfUpRoundingBoundary(t *testing.T) {
	got, err := money.ComputeLineAmounts(1, 500, money.VATRate23)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	want := money.LineAmounts{NetGrosze: 1, VATGrosze: 0, GrossGrosze: 1}
	if got != want {
		t.Errorf("qty 0.5: got %+v, want %+v", got, want)
	}

	got, err = money.ComputeLineAmounts(1, 400, money.VATRate23)
	if err != nil {
		t.Fatalf("ComputeLineAmounts: %v", err)
	}
	want = money.LineAmounts{NetGrosze: 0, VATGrosze: 0, GrossGrosze: 0}
	if got != want {
		t.Errorf("qty 0.4: got %+v, want %+v", got, want)
	}
}

func TestLineAmounts_ConsistencyAllRates(t *testing.T) {
	rates := []money.VATRate{money.VATRate23, money.VATRate8, money.VATRate5, money.VATRate0, money.VATRateZW, money.VATRateNP}
	for _, r := range rates {
		got, err := money.ComputeLineAmounts(12345, 1789, r)
		if err != nil {
			t.Fatalf("ComputeLineAmounts: %v", err)
		}
		if got.GrossGrosze != got.NetGrosze+got.VATGrosze {
			t.Errorf("rate %v: gross %d != net %d + vat %d", r, got.GrossGrosze, got.NetGrosze, got.VATGrosze)
		}
		if r.IsExempt() && got.VATGrosze != 0 {
			t.Errorf("rate %v: expected zero VAT for exempt rate, got %d", r, got.VATGrosze)
		}
	}
}

func TestLineAmounts_RejectsOverflow(t *testing.T) {
	_, err := money.ComputeLineAmounts(money.MaxGrosze, 1<<61, money.VATRate23)
	if err == nil {
		t.Fatal("expected an overflow error for an unreasonably large quantity")
	}
}
