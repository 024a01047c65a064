// Package money implements fixed-point money and quantity arithmetic for the
// invoice core. All amounts inside the core are non-negative integers in
// grosze (1/100 of the primary currency unit); quantities are non-negative
// integers in milli-units (1/1000 of the stated quantity). Rounding is
// half-up on non-negative integers, never floating point.
package money

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kpalka/fakturaapp/errs"
)

// MaxGrosze bounds a single money amount. It does not by itself bound
// unit price * quantity; ComputeLineAmounts guards that multiplication
// separately since quantity is bounded only by int64, not by MaxGrosze.
const MaxGrosze = 1_000_000_000_00 // 1 billion currency units

var moneyPattern = regexp.MustCompile(`^\d+([.,]\d{1,2})?$`)
var quantityPattern = regexp.MustCompile(`^\d+([.,]\d{1,3})?$`)

// ParseMoney parses a decimal string into an integer count of grosze. Accepts "." or "," as the decimal separator, zero
// to two fractional digits, and rejects negative amounts.
func ParseMoney(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if !moneyPattern.MatchString(text) {
		return 0, errs.New(errs.Validation, "invalid format: %q is not a valid money amount", text)
	}
	intPart, fracPart := splitDecimal(text)
	fracPart = padRight(fracPart, 2)

	grosze, err := combine(intPart, fracPart)
	if err != nil {
		return 0, err
	}
	if grosze > MaxGrosze {
		return 0, errs.New(errs.Validation, "amount too large: %q", text)
	}
	return grosze, nil
}

// FormatMoney renders grosze as a fixed "Z.GG" string: two fractional
// digits, no thousands separator.
func FormatMoney(grosze int64) string {
	if grosze < 0 {
		grosze = 0
	}
	return fmt.Sprintf("%d.%02d", grosze/100, grosze%100)
}

// ParseQuantity parses a decimal string into milli-units (1/1000), allowing
// zero to three fractional digits. Non-positive quantities are rejected.
func ParseQuantity(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if !quantityPattern.MatchString(text) {
		return 0, errs.New(errs.Validation, "invalid format: %q is not a valid quantity", text)
	}
	intPart, fracPart := splitDecimal(text)
	fracPart = padRight(fracPart, 3)

	milli, err := combine(intPart, fracPart)
	if err != nil {
		return 0, err
	}
	if milli <= 0 {
		return 0, errs.New(errs.Validation, "quantity must be > 0")
	}
	return milli, nil
}

// NormaliseQuantity returns the canonical decimal-string form of a quantity:
// leading zeros in the integer part stripped (keeping at least one digit),
// trailing zeros (and a trailing separator) in the fractional part stripped.
func NormaliseQuantity(text string) (string, error) {
	milli, err := ParseQuantity(text)
	if err != nil {
		return "", err
	}
	intPart := milli / 1000
	frac := milli % 1000
	if frac == 0 {
		return strconv.FormatInt(intPart, 10), nil
	}
	fracStr := fmt.Sprintf("%03d", frac)
	fracStr = strings.TrimRight(fracStr, "0")
	return fmt.Sprintf("%d.%s", intPart, fracStr), nil
}

// splitDecimal splits "123,45" / "123.45" / "123" into ("123", "45") /
// ("123", "45") / ("123", "").
func splitDecimal(text string) (string, string) {
	text = strings.ReplaceAll(text, ",", ".")
	parts := strings.SplitN(text, ".", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func padRight(s string, n int) string {
	if len(s) > n {
		return s[:n] // unreachable given the regexes above, kept defensive
	}
	return s + strings.Repeat("0", n-len(s))
}

// combine folds an integer part and a zero-padded fractional part (of fixed
// width) into a single integer in the fraction's unit.
func combine(intPart, fracPart string) (int64, error) {
	i, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, errs.New(errs.Validation, "invalid format: integer part %q", intPart)
	}
	scale := int64(1)
	for range fracPart {
		scale *= 10
	}
	f := int64(0)
	if fracPart != "" {
		f, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, errs.New(errs.Validation, "invalid format: fractional part %q", fracPart)
		}
	}
	if i > (1<<62)/scale {
		return 0, errs.New(errs.Validation, "amount too large")
	}
	return i*scale + f, nil
}

// RoundHalfUp computes round(numerator/denominator) with half-up rounding on
// non-negative integers: (numerator + denominator/2) / denominator.
func RoundHalfUp(numerator, denominator int64) int64 {
	if denominator <= 0 {
		panic("money: RoundHalfUp denominator must be positive")
	}
	return (numerator + denominator/2) / denominator
}
