// Package testutil provides an in-process, temp-file SQLite store for
// package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/kpalka/fakturaapp/store"
)

// OpenStore creates a fresh database file under t.TempDir() and opens it
// with AutoMigrate, cleaning up automatically when the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoicecore.db")
	s, err := store.Open(path, store.LogSilent)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

// SeedClient inserts and returns a minimal valid client.
func SeedClient(t *testing.T, s *store.Store, name, nip string) *store.Client {
	t.Helper()
	c := &store.Client{Name: name, NIP: nip}
	if err := s.CreateClient(c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}
