package invoice

import (
	"context"
	"strings"
	"testing"

	"github.com/kpalka/fakturaapp/config"
	"github.com/kpalka/fakturaapp/errs"
	"github.com/kpalka/fakturaapp/store"
	"github.com/kpalka/fakturaapp/testutil"
)

type okValidator struct{}

func (okValidator) Validate(_ context.Context, _ string) error { return nil }

type noFonts struct{}

func (noFonts) Resolve() string { return "" }

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s := testutil.OpenStore(t)
	cfg := &config.Config{
		Basedir: t.TempDir(),
		Seller: config.Seller{
			Name: "Jan Kowalski", NIP: "1234563218",
			Street: "ul. Polna 1", PostalCode: "00-001", City: "Warszawa", Country: "Poland",
		},
	}
	return New(s, cfg, okValidator{}, noFonts{}), s
}

func oneItem() []ItemInput {
	return []ItemInput{{Name: "A", Quantity: "1", Unit: "szt", UnitPriceGrosze: "100.00", VATRate: "23"}}
}

func TestCreate_ComputesTotals(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")

	inv, err := svc.Create(CreateInput{
		IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID,
		PaymentMethod: "bank_transfer", Currency: "PLN", Items: oneItem(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.SubtotalGrosze != 10000 || inv.TaxGrosze != 2300 || inv.TotalGrosze != 12300 {
		t.Fatalf("totals = %+v", inv)
	}
	if inv.Status != store.StatusDraft {
		t.Fatalf("status = %q, want draft", inv.Status)
	}
	if inv.InvoiceNumber != "FV/2026/01/0001" {
		t.Fatalf("invoice number = %q", inv.InvoiceNumber)
	}
}

func TestCreate_AllocatesMonotonicMonthlySequence(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")

	first, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	third, err := svc.Create(CreateInput{IssueDate: "2026-02-01", SaleDate: "2026-02-01", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("third create: %v", err)
	}

	if first.InvoiceNumber != "FV/2026/01/0001" || second.InvoiceNumber != "FV/2026/01/0002" || third.InvoiceNumber != "FV/2026/02/0001" {
		t.Fatalf("numbers = %q, %q, %q", first.InvoiceNumber, second.InvoiceNumber, third.InvoiceNumber)
	}
}

func TestCreate_RejectsManualOverrideCollision(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")

	_, err := svc.Create(CreateInput{InvoiceNumber: "FV/2026/01/0001", IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = svc.Create(CreateInput{InvoiceNumber: "FV/2026/01/0001", IssueDate: "2026-01-20", SaleDate: "2026-01-20", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	seqMax, err := s.PeekMaxNumber(2026, 1)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if seqMax != 0 {
		t.Fatalf("sequence counter should be untouched by a manual-override collision, got %d", seqMax)
	}
}

func TestIssue_IsIdempotent(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")

	created, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Issue(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	if first.Status != store.StatusIssued || first.XMLPath == "" || first.PDFPath == "" {
		t.Fatalf("first issue result = %+v", first)
	}

	second, err := svc.Issue(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if second.InvoiceNumber != first.InvoiceNumber {
		t.Fatalf("invoice number changed across idempotent issuance: %q -> %q", first.InvoiceNumber, second.InvoiceNumber)
	}
	if second.XMLPath != first.XMLPath || second.PDFPath != first.PDFPath {
		t.Fatalf("artifact paths changed across idempotent issuance")
	}
}

func TestUpdate_RejectsInvoiceNumberChangeOnIssued(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")

	created, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Issue(context.Background(), created.ID); err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Update(created.ID, UpdateInput{
		InvoiceNumber: "FV/2026/01/9999", IssueDate: "2026-01-15", SaleDate: "2026-01-15",
		ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN", Items: oneItem(),
	})
	if errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected CONFLICT updating an issued invoice, got %v", err)
	}
}

func TestCreate_RejectsUnknownClient(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: 999, PaymentMethod: "cash", Currency: "PLN", Items: oneItem()})
	if errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreate_RejectsEmptyItems(t *testing.T) {
	svc, s := newTestService(t)
	client := testutil.SeedClient(t, s, "ACME", "9876543210")
	_, err := svc.Create(CreateInput{IssueDate: "2026-01-15", SaleDate: "2026-01-15", ClientID: client.ID, PaymentMethod: "cash", Currency: "PLN"})
	if errs.KindOf(err) != errs.Validation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
	if !strings.Contains(err.Error(), "VALIDATION") {
		t.Fatalf("unexpected error: %v", err)
	}
}
