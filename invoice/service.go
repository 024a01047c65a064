package invoice

import (
	"context"
	"strings"

	"github.com/kpalka/fakturaapp/config"
	"github.com/kpalka/fakturaapp/errs"
	"github.com/kpalka/fakturaapp/fa3"
	"github.com/kpalka/fakturaapp/numbering"
	"github.com/kpalka/fakturaapp/pdfrender"
	"github.com/kpalka/fakturaapp/store"
	"github.com/kpalka/fakturaapp/validate"
	"gorm.io/gorm"
)

// Service orchestrates invoice creation, update, issuance and deletion, and
// owns the draft → issued → cancelled state machine.
type Service struct {
	store     *store.Store
	cfg       *config.Config
	validator fa3.SchemaValidator
	font      pdfrender.FontResolver
}

// New constructs a Service. validator/font may be nil (Issue then skips the
// external schema check / falls back to the core PDF font respectively).
func New(s *store.Store, cfg *config.Config, validator fa3.SchemaValidator, font pdfrender.FontResolver) *Service {
	return &Service{store: s, cfg: cfg, validator: validator, font: font}
}

// header holds the validated, parsed form of a CreateInput/UpdateInput
// header shared by Create and Update.
type header struct {
	issueDate       string
	saleDate        string
	clientID        uint
	paymentMethod   validate.PaymentMethod
	paymentDeadline string
	currency        string
	exchangeRate    string
	notes           string
}

func validateHeader(issueDate, saleDate string, clientID uint, paymentMethod, paymentDeadline, currency, exchangeRate, notes string) (header, error) {
	var issues validate.Issues
	var h header

	if _, _, _, err := validate.Date(issueDate); err != nil {
		issues.AddErr("issue_date", err)
	}
	h.issueDate = issueDate

	if _, _, _, err := validate.Date(saleDate); err != nil {
		issues.AddErr("sale_date", err)
	}
	h.saleDate = saleDate

	if clientID == 0 {
		issues.Add("client_id", "client_id is required")
	}
	h.clientID = clientID

	pm, err := validate.ParsePaymentMethod(paymentMethod)
	issues.AddErr("payment_method", err)
	h.paymentMethod = pm

	if paymentDeadline != "" {
		if _, _, _, err := validate.Date(paymentDeadline); err != nil {
			issues.AddErr("payment_deadline", err)
		}
	}
	h.paymentDeadline = paymentDeadline

	if err := validate.Currency(currency); err != nil {
		issues.AddErr("currency", err)
	}
	h.currency = strings.ToUpper(currency)

	rate, err := validate.ExchangeRate(exchangeRate)
	issues.AddErr("exchange_rate", err)
	h.exchangeRate = rate

	notesOK, err := validate.OptionalText("notes", notes, validate.MaxNotesLen)
	issues.AddErr("notes", err)
	h.notes = notesOK

	if err := issues.Err(); err != nil {
		return header{}, err
	}
	return h, nil
}

// Create validates the input, computes amounts/totals, allocates or accepts
// the invoice number, and writes the invoice and its items (plus a sequence
// bump, when numbering is automatic) in one transaction.
func (s *Service) Create(input CreateInput) (*store.Invoice, error) {
	h, err := validateHeader(input.IssueDate, input.SaleDate, input.ClientID,
		input.PaymentMethod, input.PaymentDeadline, input.Currency, input.ExchangeRate, input.Notes)
	if err != nil {
		return nil, err
	}

	items, err := validateAndCompute(input.Items)
	if err != nil {
		return nil, err
	}

	status := store.StatusDraft
	if input.Status != "" {
		parsed, err := validate.ParseInvoiceStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = store.InvoiceStatus(parsed)
	}

	var result store.Invoice
	err = s.store.Transaction(func(tx *gorm.DB) error {
		if err := requireClientExists(tx, h.clientID); err != nil {
			return err
		}

		number, err := s.resolveInvoiceNumber(tx, input.InvoiceNumber, h.issueDate, 0)
		if err != nil {
			return err
		}

		rows, totals := toStoreItems(items)

		inv := store.Invoice{
			InvoiceNumber:   number,
			IssueDate:       h.issueDate,
			SaleDate:        h.saleDate,
			ClientID:        h.clientID,
			Status:          status,
			PaymentMethod:   string(h.paymentMethod),
			PaymentDeadline: h.paymentDeadline,
			Currency:        h.currency,
			ExchangeRate:    h.exchangeRate,
			Notes:           h.notes,
			SubtotalGrosze:  totals.SubtotalGrosze,
			TaxGrosze:       totals.TaxGrosze,
			TotalGrosze:     totals.TotalGrosze,
			Items:           rows,
		}
		if err := store.InsertInvoiceTx(tx, &inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetInvoice(result.ID)
}

// resolveInvoiceNumber allocates an invoice number automatically when
// explicit is empty, or validates the manual-override path with a
// defence-in-depth uniqueness check, excluding excludeID (used by Update).
func (s *Service) resolveInvoiceNumber(tx *gorm.DB, explicit, issueDate string, excludeID uint) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		number := strings.TrimSpace(explicit)
		exists, err := store.InvoiceNumberExistsTx(tx, number, excludeID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", errs.Conflictf("invoice number %q is already in use", number)
		}
		return number, nil
	}

	year, month, err := validate.YearMonth(issueDate)
	if err != nil {
		return "", err
	}
	seq, err := store.AllocateNumberTx(tx, year, month)
	if err != nil {
		return "", err
	}
	number := numbering.Format(year, month, seq)

	exists, err := store.InvoiceNumberExistsTx(tx, number, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errs.Internalf("allocated invoice number %q already exists", number)
	}
	return number, nil
}

func requireClientExists(tx *gorm.DB, clientID uint) error {
	var count int64
	if err := tx.Model(&store.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NotFoundf("client %d not found", clientID)
	}
	return nil
}

func toStoreItems(items []computedItem) ([]store.InvoiceItem, struct {
	SubtotalGrosze, TaxGrosze, TotalGrosze int64
}) {
	rows := make([]store.InvoiceItem, len(items))
	var subtotal, tax, total int64
	for i, it := range items {
		rows[i] = store.InvoiceItem{
			Position:        i + 1,
			Name:            it.name,
			Quantity:        it.quantity,
			Unit:            it.unit,
			UnitPriceGrosze: it.unitPriceGrosze,
			VATRate:         it.rate.String(),
			NetGrosze:       it.amounts.NetGrosze,
			VATGrosze:       it.amounts.VATGrosze,
			GrossGrosze:     it.amounts.GrossGrosze,
		}
		subtotal += it.amounts.NetGrosze
		tax += it.amounts.VATGrosze
		total += it.amounts.GrossGrosze
	}
	return rows, struct {
		SubtotalGrosze, TaxGrosze, TotalGrosze int64
	}{subtotal, tax, total}
}

// Update reloads a draft invoice, overwrites its header fields with the
// input (keeping the existing number when InvoiceNumber is empty), replaces its items,
// recomputes totals and rewrites the row, all in one transaction. Issued
// invoices reject the call: an issued invoice must never be silently
// modified.
func (s *Service) Update(id uint, input UpdateInput) (*store.Invoice, error) {
	h, err := validateHeader(input.IssueDate, input.SaleDate, input.ClientID,
		input.PaymentMethod, input.PaymentDeadline, input.Currency, input.ExchangeRate, input.Notes)
	if err != nil {
		return nil, err
	}
	items, err := validateAndCompute(input.Items)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(func(tx *gorm.DB) error {
		existing, err := store.GetInvoiceTx(tx, id)
		if err != nil {
			return err
		}
		if existing.Status != store.StatusDraft {
			return errs.Conflictf("invoice %d is %s and can no longer be edited", id, existing.Status)
		}
		if err := requireClientExists(tx, h.clientID); err != nil {
			return err
		}

		number := existing.InvoiceNumber
		if strings.TrimSpace(input.InvoiceNumber) != "" && strings.TrimSpace(input.InvoiceNumber) != existing.InvoiceNumber {
			number, err = s.resolveInvoiceNumber(tx, input.InvoiceNumber, h.issueDate, id)
			if err != nil {
				return err
			}
		}

		rows, totals := toStoreItems(items)
		if err := store.ReplaceInvoiceItemsTx(tx, id, rows); err != nil {
			return err
		}

		updated := store.Invoice{
			ID:              id,
			InvoiceNumber:   number,
			IssueDate:       h.issueDate,
			SaleDate:        h.saleDate,
			ClientID:        h.clientID,
			PaymentMethod:   string(h.paymentMethod),
			PaymentDeadline: h.paymentDeadline,
			Currency:        h.currency,
			ExchangeRate:    h.exchangeRate,
			Notes:           h.notes,
			SubtotalGrosze:  totals.SubtotalGrosze,
			TaxGrosze:       totals.TaxGrosze,
			TotalGrosze:     totals.TotalGrosze,
		}
		return store.UpdateInvoiceHeaderTx(tx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetInvoice(id)
}

// Delete removes an invoice and cascades its items. Guarding deletion of
// issued invoices is left to the caller.
func (s *Service) Delete(id uint) error {
	return s.store.DeleteInvoice(id)
}

// ListFilter narrows List; Status, when non-empty, must be a valid
// validate.InvoiceStatus value.
type ListFilter struct {
	Status   string
	ClientID uint
	FromDate string
	ToDate   string
	Limit    int
	Offset   int
}

// List returns a page of invoices matching the filter.
func (s *Service) List(f ListFilter) ([]store.Invoice, int64, error) {
	var status store.InvoiceStatus
	if f.Status != "" {
		parsed, err := validate.ParseInvoiceStatus(f.Status)
		if err != nil {
			return nil, 0, err
		}
		status = store.InvoiceStatus(parsed)
	}
	return s.store.ListInvoices(store.InvoiceFilter{
		Status: status, ClientID: f.ClientID,
		FromDate: f.FromDate, ToDate: f.ToDate,
		Limit: f.Limit, Offset: f.Offset,
	})
}

// Issue is idempotent when the invoice is already issued, regenerating any
// missing artifact; otherwise it commits the draft-to-issued transition
// first and generates the XML, then the PDF, after that commit.
func (s *Service) Issue(ctx context.Context, id uint) (*store.Invoice, error) {
	inv, err := s.store.GetInvoice(id)
	if err != nil {
		return nil, err
	}

	if inv.Status != store.StatusIssued {
		err = s.store.Transaction(func(tx *gorm.DB) error {
			current, err := store.GetInvoiceTx(tx, id)
			if err != nil {
				return err
			}
			if current.Status != store.StatusDraft {
				return errs.Conflictf("invoice %d is %s and cannot be issued", id, current.Status)
			}
			return store.SetStatusIssuedTx(tx, id, nil)
		})
		if err != nil {
			return nil, err
		}
		inv, err = s.store.GetInvoice(id)
		if err != nil {
			return nil, err
		}
	}

	if err := s.cfg.EnsureDataDirs(); err != nil {
		return nil, errs.IOErrorf(err, "issue invoice %d", id)
	}

	if inv.XMLPath == "" {
		path, err := s.xmlPath(inv.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		if err := fa3.Generate(ctx, s.buildFA3Input(inv), path, s.validator); err != nil {
			return nil, err
		}
		if err := s.store.SetXMLPath(id, path); err != nil {
			return nil, errs.IOErrorf(err, "record xml_path for invoice %d", id)
		}
		inv.XMLPath = path
	}

	if inv.PDFPath == "" {
		path, err := s.pdfPath(inv.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		renderer := pdfrender.NewRenderer(s.font)
		data, err := renderer.Render(s.buildPDFInput(inv))
		if err != nil {
			return nil, errs.Internalf("render pdf for invoice %d: %v", id, err)
		}
		if err := pdfrender.WriteFile(path, data); err != nil {
			return nil, errs.IOErrorf(err, "write pdf for invoice %d", id)
		}
		if err := s.store.SetPDFPath(id, path); err != nil {
			return nil, errs.IOErrorf(err, "record pdf_path for invoice %d", id)
		}
		inv.PDFPath = path
	}

	return s.store.GetInvoice(id)
}

func (s *Service) xmlPath(invoiceNumber string) (string, error) {
	filename, err := numbering.ToFilename(invoiceNumber, "xml")
	if err != nil {
		return "", err
	}
	return numbering.ResolveInDir(s.cfg.XMLDir(), filename)
}

func (s *Service) pdfPath(invoiceNumber string) (string, error) {
	filename, err := numbering.ToFilename(invoiceNumber, "pdf")
	if err != nil {
		return "", err
	}
	return numbering.ResolveInDir(s.cfg.PDFDir(), filename)
}
