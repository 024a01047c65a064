// Package corectx wires together the single long-lived core-context object
// the rest of the invoice core depends on: the database handle, the loaded
// configuration, the external schema validator, and the PDF font resolver.
// It is created once at process start and passed explicitly into services
// rather than reached for as a global.
package corectx

import (
	"github.com/kpalka/fakturaapp/config"
	"github.com/kpalka/fakturaapp/fa3"
	"github.com/kpalka/fakturaapp/invoice"
	"github.com/kpalka/fakturaapp/pdfrender"
	"github.com/kpalka/fakturaapp/store"
)

// Core is the process-wide context: a cached handle to the embedded
// database, the loaded configuration, and the Invoice Service built on top
// of both. It holds no other mutable state.
type Core struct {
	Config  *config.Config
	Store   *store.Store
	Invoice *invoice.Service
}

// Open loads cfg's database, builds the validator/font-resolver
// capabilities from it, and returns a ready-to-use Core.
func Open(cfg *config.Config) (*Core, error) {
	logMode := store.LogSilent
	if cfg.DBLogger == "info" {
		logMode = store.LogInfo
	}

	s, err := store.Open(cfg.DBPath(), logMode)
	if err != nil {
		return nil, err
	}

	var validator fa3.SchemaValidator
	if cfg.Validator.BinaryPath != "" {
		validator = fa3.ExecValidator{
			BinaryPath:  cfg.Validator.BinaryPath,
			SchemaPath:  cfg.Validator.SchemaPath,
			CatalogPath: cfg.Validator.CatalogPath,
		}
	}

	font := pdfrender.DefaultFontResolver()

	return &Core{
		Config:  cfg,
		Store:   s,
		Invoice: invoice.New(s, cfg, validator, font),
	}, nil
}
