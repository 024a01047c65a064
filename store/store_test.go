package store_test

import (
	"path/filepath"
	"testing"

	"github.com/kpalka/fakturaapp/errs"
	"github.com/kpalka/fakturaapp/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(path, store.LogSilent)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestClientCRUD(t *testing.T) {
	s := openTestStore(t)

	c := &store.Client{Name: "ACME", NIP: "9876543210"}
	if err := s.CreateClient(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("expected an assigned id")
	}

	got, err := s.GetClient(c.ID)
	if err != nil || got.Name != "ACME" {
		t.Fatalf("get: %v, %+v", err, got)
	}

	dup := &store.Client{Name: "ACME 2", NIP: "9876543210"}
	if err := s.CreateClient(dup); errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected CONFLICT for duplicate NIP, got %v", err)
	}

	if _, err := s.GetClient(9999); errs.KindOf(err) != errs.NotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestFindClientsWithText(t *testing.T) {
	s := openTestStore(t)
	_ = mustCreateClient(t, s, "Globex Corporation", "1111111111")
	_ = mustCreateClient(t, s, "Initech", "2222222222")

	found, err := s.FindClientsWithText("globex")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Globex Corporation" {
		t.Fatalf("found = %+v", found)
	}
}

func TestDeleteClient_RejectsWhenReferenced(t *testing.T) {
	s := openTestStore(t)
	client := mustCreateClient(t, s, "ACME", "9876543210")

	inv := &store.Invoice{
		InvoiceNumber: "FV/2026/01/0001", IssueDate: "2026-01-15", SaleDate: "2026-01-15",
		ClientID: client.ID, Status: store.StatusDraft, PaymentMethod: "cash", Currency: "PLN",
	}
	if err := store.InsertInvoiceTx(s.DB(), inv); err != nil {
		t.Fatalf("insert invoice: %v", err)
	}

	if err := s.DeleteClient(client.ID); errs.KindOf(err) != errs.ReferenceInUse {
		t.Fatalf("expected REFERENCE_IN_USE, got %v", err)
	}
}

func TestAllocateNumberTx_Monotonic(t *testing.T) {
	s := openTestStore(t)
	for want := 1; want <= 3; want++ {
		got, err := store.AllocateNumberTx(s.DB(), 2026, 1)
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		if got != want {
			t.Fatalf("allocation #%d = %d, want %d", want, got, want)
		}
	}

	peak, err := s.PeekMaxNumber(2026, 1)
	if err != nil || peak != 3 {
		t.Fatalf("PeekMaxNumber = %d, %v; want 3, nil", peak, err)
	}

	fresh, err := s.PeekMaxNumber(2025, 12)
	if err != nil || fresh != 0 {
		t.Fatalf("PeekMaxNumber for unused bucket = %d, %v; want 0, nil", fresh, err)
	}
}

func mustCreateClient(t *testing.T, s *store.Store, name, nip string) *store.Client {
	t.Helper()
	c := &store.Client{Name: name, NIP: nip}
	if err := s.CreateClient(c); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}
