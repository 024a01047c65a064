// Package numbering implements the human-readable invoice-number format
// ("FV/YYYY/MM/NNNN") and the invoice-number-to-filename transform. The
// transactional sequence allocation itself lives in the store package,
// since it must run inside the same database transaction as the invoice
// insert; this package only formats and validates.
package numbering

import (
	"fmt"
	"regexp"

	"github.com/kpalka/fakturaapp/errs"
)

var numberPattern = regexp.MustCompile(`^FV/(\d{4})/(\d{2})/(\d{4,})$`)

// Format renders the FV/YYYY/MM/NNNN human identifier. NNNN is zero-padded
// to at least four digits with no upper cap.
func Format(year, month, seq int) string {
	return fmt.Sprintf("FV/%04d/%02d/%04d", year, month, seq)
}

// Parse extracts (year, month, seq) from a well-formed invoice number.
func Parse(number string) (year, month, seq int, err error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, 0, errs.New(errs.Validation, "invalid invoice number format: %q", number)
	}
	fmt.Sscanf(m[1], "%d", &year)
	fmt.Sscanf(m[2], "%d", &month)
	fmt.Sscanf(m[3], "%d", &seq)
	return year, month, seq, nil
}
