package store

import (
	"errors"

	"github.com/kpalka/fakturaapp/errs"
	"gorm.io/gorm"
)

// Transaction runs fn inside a single serialisable database transaction.
// Any returned error rolls back the whole unit.
func (s *Store) Transaction(fn func(tx *gorm.DB) error) error {
	return s.db.Transaction(fn)
}

// InsertInvoiceTx inserts the invoice header and its items inside tx. The
// invoice's Items slice IDs are reset so re-submitted structs cannot collide.
func InsertInvoiceTx(tx *gorm.DB, inv *Invoice) error {
	if err := tx.Omit("Items").Create(inv).Error; err != nil {
		return translateUniqueErr(err, "an invoice with this number already exists")
	}
	for i := range inv.Items {
		inv.Items[i].ID = 0
		inv.Items[i].InvoiceID = inv.ID
	}
	if len(inv.Items) > 0 {
		if err := tx.Omit("ID").Create(&inv.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceInvoiceItemsTx deletes every existing item of invoiceID and
// recreates the given slice, within tx: on update, existing items are
// wholly replaced in the same transaction.
func ReplaceInvoiceItemsTx(tx *gorm.DB, invoiceID uint, items []InvoiceItem) error {
	if err := tx.Where("invoice_id = ?", invoiceID).Delete(&InvoiceItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].InvoiceID = invoiceID
	}
	if len(items) > 0 {
		if err := tx.Omit("ID").Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateInvoiceHeaderTx rewrites the mutable header fields of an existing
// draft invoice row.
func UpdateInvoiceHeaderTx(tx *gorm.DB, inv *Invoice) error {
	result := tx.Model(&Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
		"invoice_number":   inv.InvoiceNumber,
		"issue_date":       inv.IssueDate,
		"sale_date":        inv.SaleDate,
		"client_id":        inv.ClientID,
		"payment_method":   inv.PaymentMethod,
		"payment_deadline": inv.PaymentDeadline,
		"currency":         inv.Currency,
		"exchange_rate":    inv.ExchangeRate,
		"notes":            inv.Notes,
		"subtotal_grosze":  inv.SubtotalGrosze,
		"tax_grosze":       inv.TaxGrosze,
		"total_grosze":     inv.TotalGrosze,
	})
	if result.Error != nil {
		return translateUniqueErr(result.Error, "an invoice with this number already exists")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("invoice %d not found", inv.ID)
	}
	return nil
}

// InvoiceNumberExistsTx reports whether number is already used by another
// invoice. This is a defence-in-depth check ahead of the unique index.
func InvoiceNumberExistsTx(tx *gorm.DB, number string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&Invoice{}).Where("invoice_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// GetInvoice loads an invoice with its items.
func (s *Store) GetInvoice(id uint) (*Invoice, error) {
	var inv Invoice
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Client").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("invoice %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvoiceTx is the transaction-scoped counterpart of GetInvoice, used
// when a caller needs read-then-write consistency within a single
// transaction (e.g. the status check before the transition in
// invoice.Service.Issue). It takes no explicit row lock.
func GetInvoiceTx(tx *gorm.DB, id uint) (*Invoice, error) {
	var inv Invoice
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("invoice %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvoice removes an invoice and cascades its items.
func (s *Store) DeleteInvoice(id uint) error {
	result := s.db.Select("Items").Delete(&Invoice{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("invoice %d not found", id)
	}
	return nil
}

// InvoiceFilter narrows ListInvoices.
type InvoiceFilter struct {
	Status   InvoiceStatus
	ClientID uint
	FromDate string // YYYY-MM-DD, inclusive, matched against issue_date
	ToDate   string // YYYY-MM-DD, inclusive
	Limit    int
	Offset   int
}

// ListInvoices returns a page of invoice headers (without items) matching
// the filter, newest issue date first.
func (s *Store) ListInvoices(f InvoiceFilter) ([]Invoice, int64, error) {
	q := s.db.Model(&Invoice{}).Preload("Client")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.FromDate != "" {
		q = q.Where("issue_date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		q = q.Where("issue_date <= ?", f.ToDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []Invoice
	err := q.Order("issue_date DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&rows).Error
	return rows, total, err
}

// SetStatusIssuedTx transitions an invoice row to issued, within tx, also
// writing any extra column values given in totals (nil writes none).
func SetStatusIssuedTx(tx *gorm.DB, id uint, totals map[string]any) error {
	updates := map[string]any{"status": StatusIssued}
	for k, v := range totals {
		updates[k] = v
	}
	result := tx.Model(&Invoice{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("invoice %d not found", id)
	}
	return nil
}

// SetXMLPath persists the XML artifact path after a successful file write
// and a successful external schema validation.
func (s *Store) SetXMLPath(id uint, path string) error {
	return s.db.Model(&Invoice{}).Where("id = ?", id).Update("xml_path", path).Error
}

// SetPDFPath persists the PDF artifact path after a successful file write.
func (s *Store) SetPDFPath(id uint, path string) error {
	return s.db.Model(&Invoice{}).Where("id = ?", id).Update("pdf_path", path).Error
}
