package numbering_test

import (
	"strings"
	"testing"

	"github.com/kpalka/fakturaapp/numbering"
)

func TestFormat(t *testing.T) {
	if got := numbering.Format(2026, 1, 1); got != "FV/2026/01/0001" {
		t.Errorf("Format = %q", got)
	}
	if got := numbering.Format(2026, 1, 12345); got != "FV/2026/01/12345" {
		t.Errorf("Format with wide seq = %q", got)
	}
}

func TestParse(t *testing.T) {
	y, m, n, err := numbering.Parse("FV/2026/01/0001")
	if err != nil {
		t.Fatal(err)
	}
	if y != 2026 || m != 1 || n != 1 {
		t.Errorf("Parse = %d %d %d", y, m, n)
	}
}

func TestToFilename(t *testing.T) {
	got, err := numbering.ToFilename("FV/2026/01/0001", "xml")
	if err != nil {
		t.Fatal(err)
	}
	if got != "FV-2026-01-0001.xml" {
		t.Errorf("ToFilename = %q", got)
	}
}

func TestToFilename_SanitisesTraversal(t *testing.T) {
	got, err := numbering.ToFilename("../../etc/passwd", "xml")
	if err != nil {
		t.Fatalf("ToFilename should still succeed after sanitisation: %v", err)
	}
	if strings.Contains(got, "..") || strings.ContainsAny(got, "/\\") {
		t.Errorf("sanitised filename still unsafe: %q", got)
	}
}

func TestToFilename_RejectsOverlong(t *testing.T) {
	long := strings.Repeat("A", 300)
	if _, err := numbering.ToFilename(long, "xml"); err == nil {
		t.Error("expected overlong filename to be rejected")
	}
}

func TestResolveInDir(t *testing.T) {
	if _, err := numbering.ResolveInDir("/data/xml", "FV-2026-01-0001.xml"); err != nil {
		t.Fatal(err)
	}
	if _, err := numbering.ResolveInDir("/data/xml", "../pdf/x.xml"); err == nil {
		t.Error("expected traversal to be rejected")
	}
	if _, err := numbering.ResolveInDir("/data/xml", "/etc/passwd"); err == nil {
		t.Error("expected absolute path to be rejected")
	}
}
