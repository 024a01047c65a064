// Package validate implements NIP/date/enum/currency/free-text format
// checks and normalisation rules. Validators return structured issues
// rather than failing fast, collecting every violation on a record before
// rejecting it.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kpalka/fakturaapp/errs"
	"github.com/shopspring/decimal"
)

var dateExact = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	MaxNameLen  = 255
	MaxUnitLen  = 32
	MaxNotesLen = 2000
)

// NormaliseNIP strips every non-digit character from a tax number and
// requires exactly 10 decimal digits. Checksum verification is intentionally
// not performed.
func NormaliseNIP(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 {
		return "", errs.New(errs.Validation, "NIP must have exactly 10 digits, got %d", len(digits))
	}
	return digits, nil
}

// Date validates a YYYY-MM-DD string and returns its (year, month, day).
func Date(s string) (year, month, day int, err error) {
	if !dateExact.MatchString(s) {
		return 0, 0, 0, errs.New(errs.Validation, "invalid date format, want YYYY-MM-DD, got %q", s)
	}
	t, parseErr := time.Parse("2006-01-02", s)
	if parseErr != nil {
		return 0, 0, 0, errs.New(errs.Validation, "invalid date %q: %v", s, parseErr)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// YearMonth extracts the (year, month) bucket used by the numbering
// authority from an issue date string.
func YearMonth(issueDate string) (year, month int, err error) {
	year, month, _, err = Date(issueDate)
	return year, month, err
}

// Currency requires a 3-8 character code with no whitespace.
func Currency(code string) error {
	if len(code) < 3 || len(code) > 8 {
		return errs.New(errs.Validation, "currency code must be 3-8 characters, got %q", code)
	}
	if strings.ContainsAny(code, " \t\n\r") {
		return errs.New(errs.Validation, "currency code must not contain whitespace, got %q", code)
	}
	return nil
}

// ExchangeRate validates an optional exchange-rate string as a well-formed,
// positive decimal, without converting it to grosze: the core only ever
// computes tax in the local minor unit, so exchange_rate is stored verbatim
// and only checked for shape here, using decimal.Decimal as the bridge
// type for the pass-through string.
func ExchangeRate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", errs.New(errs.Validation, "invalid exchange rate %q: %v", raw, err)
	}
	if d.Sign() <= 0 {
		return "", errs.New(errs.Validation, "exchange rate must be positive, got %q", raw)
	}
	return d.String(), nil
}

// PaymentMethod is the enum of accepted payment methods.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
	PaymentOther        PaymentMethod = "other"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentBankTransfer, PaymentCard, PaymentOther:
		return PaymentMethod(s), nil
	default:
		return "", errs.New(errs.Validation, "invalid payment method: %q", s)
	}
}

// InvoiceStatus is the enum of invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusIssued    InvoiceStatus = "issued"
	StatusCancelled InvoiceStatus = "cancelled"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case StatusDraft, StatusIssued, StatusCancelled:
		return InvoiceStatus(s), nil
	default:
		return "", errs.New(errs.Validation, "invalid invoice status: %q", s)
	}
}

// RequiredText trims and rejects empty strings, enforcing a max length.
func RequiredText(field, s string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.New(errs.Validation, "%s must not be empty", field)
	}
	if len(s) > maxLen {
		return "", errs.New(errs.Validation, "%s exceeds maximum length of %d", field, maxLen)
	}
	return s, nil
}

// OptionalText trims and enforces a max length, allowing an empty result.
func OptionalText(field, s string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return "", errs.New(errs.Validation, "%s exceeds maximum length of %d", field, maxLen)
	}
	return s, nil
}

// Email validates an optional email address against a standard shape.
func Email(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return "", errs.New(errs.Validation, "invalid email address: %q", s)
	}
	return s, nil
}

// Issues is the accumulator used by callers that want to collect every
// violation before failing.
type Issues struct {
	list []errs.Issue
}

func (i *Issues) Add(field, format string, args ...any) {
	i.list = append(i.list, errs.Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (i *Issues) AddErr(field string, err error) {
	if err == nil {
		return
	}
	i.list = append(i.list, errs.Issue{Field: field, Message: err.Error()})
}

func (i *Issues) Err() error {
	if len(i.list) == 0 {
		return nil
	}
	return errs.ValidationIssues(i.list)
}

// ParseInt is a small helper for numeric strings that do not go through
// the money package.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
