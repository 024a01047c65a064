package invoice

import (
	"github.com/kpalka/fakturaapp/fa3"
	"github.com/kpalka/fakturaapp/money"
	"github.com/kpalka/fakturaapp/pdfrender"
	"github.com/kpalka/fakturaapp/store"
	"github.com/kpalka/fakturaapp/validate"
)

// buildFA3Input translates a persisted invoice + its seller profile into
// the fa3 codec's input shape.
func (s *Service) buildFA3Input(inv *store.Invoice) fa3.Input {
	seller := s.cfg.Seller
	lines := make([]fa3.Line, len(inv.Items))
	for i, it := range inv.Items {
		rate, _ := money.ParseVATRate(it.VATRate)
		lines[i] = fa3.Line{
			Name: it.Name, Unit: it.Unit, Quantity: it.Quantity,
			UnitPriceGrosze: it.UnitPriceGrosze, Rate: rate,
			Amounts: money.LineAmounts{NetGrosze: it.NetGrosze, VATGrosze: it.VATGrosze, GrossGrosze: it.GrossGrosze},
		}
	}

	return fa3.Input{
		Currency:      inv.Currency,
		IssueDate:     inv.IssueDate,
		SaleDate:      inv.SaleDate,
		InvoiceNumber: inv.InvoiceNumber,
		Seller: fa3.Party{
			NIP: seller.NIP, Name: seller.Name,
			Street: seller.Street, PostalCode: seller.PostalCode, City: seller.City, Country: seller.Country,
			Email: seller.Email, Phone: seller.Phone,
		},
		Buyer: fa3.Party{
			NIP: inv.Client.NIP, Name: inv.Client.Name,
			Street: inv.Client.Address, PostalCode: inv.Client.PostalCode, City: inv.Client.City,
			Email: inv.Client.Email, Phone: inv.Client.Phone,
		},
		Lines:  lines,
		Totals: money.InvoiceTotals{SubtotalGrosze: inv.SubtotalGrosze, TaxGrosze: inv.TaxGrosze, TotalGrosze: inv.TotalGrosze},
	}
}

var paymentMethodLabels = map[validate.PaymentMethod]string{
	validate.PaymentCash:         "Gotówka",
	validate.PaymentBankTransfer: "Przelew",
	validate.PaymentCard:         "Karta",
	validate.PaymentOther:        "Inne",
}

// buildPDFInput translates a persisted invoice into the pdfrender layout
// input shape.
func (s *Service) buildPDFInput(inv *store.Invoice) pdfrender.Invoice {
	seller := s.cfg.Seller
	lines := make([]pdfrender.Line, len(inv.Items))
	for i, it := range inv.Items {
		rate, _ := money.ParseVATRate(it.VATRate)
		lines[i] = pdfrender.Line{
			Name: it.Name, Quantity: it.Quantity, Unit: it.Unit,
			UnitPriceGrosze: it.UnitPriceGrosze, Rate: rate,
			NetGrosze: it.NetGrosze, GrossGrosze: it.GrossGrosze,
		}
	}

	label := string(inv.PaymentMethod)
	if l, ok := paymentMethodLabels[validate.PaymentMethod(inv.PaymentMethod)]; ok {
		label = l
	}

	return pdfrender.Invoice{
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       inv.IssueDate,
		SaleDate:        inv.SaleDate,
		PaymentDeadline: inv.PaymentDeadline,
		PaymentMethod:   label,
		Currency:        inv.Currency,
		Seller: pdfrender.Party{
			Name: seller.Name, NIP: seller.NIP, Street: seller.Street,
			PostalCode: seller.PostalCode, City: seller.City, Email: seller.Email, Phone: seller.Phone,
		},
		Buyer: pdfrender.Party{
			Name: inv.Client.Name, NIP: inv.Client.NIP, Street: inv.Client.Address,
			PostalCode: inv.Client.PostalCode, City: inv.Client.City, Email: inv.Client.Email, Phone: inv.Client.Phone,
		},
		Lines:       lines,
		Totals:      money.InvoiceTotals{SubtotalGrosze: inv.SubtotalGrosze, TaxGrosze: inv.TaxGrosze, TotalGrosze: inv.TotalGrosze},
		BankAccount: seller.BankAccount,
		Notes:       inv.Notes,
	}
}
