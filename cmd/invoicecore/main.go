// Command invoicecore is a minimal composition root wiring config, store
// and corectx together, demonstrating create/issue end to end. It is not
// an HTTP server or CLI framework, only enough of a runnable program to
// exercise the wired stack.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/kpalka/fakturaapp/config"
	"github.com/kpalka/fakturaapp/corectx"
	"github.com/kpalka/fakturaapp/invoice"
	"github.com/kpalka/fakturaapp/store"
)

func main() {
	var configPath string
	var demo bool
	flag.StringVar(&configPath, "config", "config.toml", "path to the TOML configuration file")
	flag.BoolVar(&demo, "demo", false, "create and issue a single demo invoice, then exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDataDirs(); err != nil {
		log.Fatalf("prepare data directories: %v", err)
	}

	core, err := corectx.Open(cfg)
	if err != nil {
		log.Fatalf("open core context: %v", err)
	}

	if demo {
		runDemo(core)
		return
	}

	log.Printf("invoicecore ready; database at %s", cfg.DBPath())
}

func runDemo(core *corectx.Core) {
	client := &store.Client{Name: "ACME Sp. z o.o.", NIP: "9876543210"}
	if err := core.Store.CreateClient(client); err != nil {
		log.Fatalf("create demo client: %v", err)
	}

	inv, err := core.Invoice.Create(invoice.CreateInput{
		IssueDate:     "2026-01-15",
		SaleDate:      "2026-01-15",
		ClientID:      client.ID,
		PaymentMethod: "bank_transfer",
		Currency:      "PLN",
		Items: []invoice.ItemInput{
			{Name: "Usługi programistyczne", Quantity: "10", Unit: "h", UnitPriceGrosze: "150.00", VATRate: "23"},
		},
	})
	if err != nil {
		log.Fatalf("create demo invoice: %v", err)
	}
	log.Printf("created draft invoice %s (id=%d)", inv.InvoiceNumber, inv.ID)

	issued, err := core.Invoice.Issue(context.Background(), inv.ID)
	if err != nil {
		log.Fatalf("issue demo invoice: %v", err)
	}
	log.Printf("issued invoice %s: xml=%s pdf=%s", issued.InvoiceNumber, issued.XMLPath, issued.PDFPath)
}
