// Package store implements the persistence layer: schema, transactions,
// and CRUD for clients, invoices, items and numbering sequences, on top
// of an embedded GORM-backed SQLite database.
package store

import "time"

// Client is a buyer the invoice core bills.
type Client struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null"`
	NIP         string `gorm:"column:nip;uniqueIndex;not null"`
	Address     string
	City        string
	PostalCode  string `gorm:"column:postal_code"`
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	InvoiceRefs []Invoice `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
}

func (Client) TableName() string { return "clients" }

// InvoiceStatus mirrors validate.InvoiceStatus as a persisted string so the
// store package does not need to import the validate package for its own
// column type.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusIssued    InvoiceStatus = "issued"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Invoice is the header row of an invoice.
type Invoice struct {
	ID              uint          `gorm:"primarykey"`
	InvoiceNumber   string        `gorm:"column:invoice_number;uniqueIndex;not null"`
	IssueDate       string        `gorm:"column:issue_date;index;not null"` // YYYY-MM-DD
	SaleDate        string        `gorm:"column:sale_date;not null"`        // YYYY-MM-DD
	ClientID        uint          `gorm:"column:client_id;index;not null"`
	Client          Client        `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	Status          InvoiceStatus `gorm:"not null;default:draft;check:status IN ('draft','issued','cancelled')"`
	PaymentMethod   string        `gorm:"column:payment_method;not null"`
	PaymentDeadline string        `gorm:"column:payment_deadline"` // YYYY-MM-DD, optional
	Currency        string        `gorm:"not null"`
	ExchangeRate    string        `gorm:"column:exchange_rate"` // optional decimal string
	Notes           string
	SubtotalGrosze  int64         `gorm:"column:subtotal_grosze;not null"`
	TaxGrosze       int64         `gorm:"column:tax_grosze;not null"`
	TotalGrosze     int64         `gorm:"column:total_grosze;not null"`
	XMLPath         string        `gorm:"column:xml_path"`
	PDFPath         string        `gorm:"column:pdf_path"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a single line item of an invoice.
type InvoiceItem struct {
	ID              uint   `gorm:"primarykey"`
	InvoiceID       uint   `gorm:"column:invoice_id;index;not null"`
	Position        int    `gorm:"not null"`
	Name            string `gorm:"not null"`
	Quantity        string `gorm:"not null"` // canonical decimal string
	Unit            string `gorm:"not null"`
	UnitPriceGrosze int64  `gorm:"column:unit_price_grosze;not null"`
	VATRate         string `gorm:"column:vat_rate;not null"` // "23","8","5","0","ZW","NP"
	NetGrosze       int64  `gorm:"column:net_grosze;not null"`
	VATGrosze       int64  `gorm:"column:vat_grosze;not null"`
	GrossGrosze     int64  `gorm:"column:gross_grosze;not null"`
	CreatedAt       time.Time
}

func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceSequence backs the monthly numbering authority.
type InvoiceSequence struct {
	ID         uint `gorm:"primarykey"`
	Year       int  `gorm:"not null;uniqueIndex:idx_year_month"`
	Month      int  `gorm:"not null;uniqueIndex:idx_year_month"`
	LastNumber int  `gorm:"column:last_number;not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (InvoiceSequence) TableName() string { return "invoice_sequences" }
