// Package invoice implements invoice creation, update, issuance and
// deletion, and owns the draft → issued → cancelled state machine.
package invoice

import (
	"fmt"

	"github.com/kpalka/fakturaapp/money"
	"github.com/kpalka/fakturaapp/validate"
)

// ItemInput is one line item as supplied by a caller, pre-validation.
type ItemInput struct {
	Name            string
	Quantity        string // decimal string, 0-3 fractional digits
	Unit            string
	UnitPriceGrosze string // decimal string, 0-2 fractional digits
	VATRate         string // "23","8","5","0","ZW","NP"
}

// CreateInput is the payload for Service.Create.
type CreateInput struct {
	InvoiceNumber   string // optional explicit override of the allocated number
	IssueDate       string
	SaleDate        string
	ClientID        uint
	Status          string // "" defaults to draft
	PaymentMethod   string
	PaymentDeadline string
	Currency        string
	ExchangeRate    string
	Notes           string
	Items           []ItemInput
}

// UpdateInput is the payload for Service.Update. Every header field
// overwrites the stored value, since plain struct fields have no
// null/absent distinction to merge against; the one exception is
// InvoiceNumber, where "" keeps the existing number.
type UpdateInput struct {
	InvoiceNumber   string
	IssueDate       string
	SaleDate        string
	ClientID        uint
	PaymentMethod   string
	PaymentDeadline string
	Currency        string
	ExchangeRate    string
	Notes           string
	Items           []ItemInput
}

// computedItem is an ItemInput after validation and money computation.
type computedItem struct {
	name            string
	quantity        string
	unit            string
	unitPriceGrosze int64
	rate            money.VATRate
	amounts         money.LineAmounts
}

// validateAndCompute validates each raw item and computes its amounts,
// collecting every issue before returning instead of failing on the first.
func validateAndCompute(items []ItemInput) ([]computedItem, error) {
	var issues validate.Issues
	out := make([]computedItem, 0, len(items))

	if len(items) == 0 {
		issues.Add("items", "invoice must have at least one line item")
	}

	for i, raw := range items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		name, err := validate.RequiredText("name", raw.Name, validate.MaxNameLen)
		issues.AddErr(field("name"), err)
		unit, err := validate.RequiredText("unit", raw.Unit, validate.MaxUnitLen)
		issues.AddErr(field("unit"), err)
		quantityMilli, err := money.ParseQuantity(raw.Quantity)
		issues.AddErr(field("quantity"), err)
		canonicalQty, _ := money.NormaliseQuantity(raw.Quantity)
		unitPrice, err := money.ParseMoney(raw.UnitPriceGrosze)
		issues.AddErr(field("unit_price"), err)
		rate, err := money.ParseVATRate(raw.VATRate)
		issues.AddErr(field("vat_rate"), err)
		amounts, err := money.ComputeLineAmounts(unitPrice, quantityMilli, rate)
		issues.AddErr(field("amount"), err)

		out = append(out, computedItem{
			name: name, quantity: canonicalQty, unit: unit,
			unitPriceGrosze: unitPrice, rate: rate,
			amounts: amounts,
		})
	}

	if err := issues.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
