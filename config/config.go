// Package config loads the invoice core's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Seller holds the fixed seller profile stamped onto every invoice: the
// core is single-tenant, so there is exactly one.
type Seller struct {
	Name        string `toml:"name"`
	NIP         string `toml:"nip"`
	Street      string `toml:"street"`
	PostalCode  string `toml:"postal_code"`
	City        string `toml:"city"`
	Country     string `toml:"country"` // free-text; normalised to ISO alpha-2 via countries
	Email       string `toml:"email"`
	Phone       string `toml:"phone"`
	BankAccount string `toml:"bank_account"`
}

// Config is the top-level configuration document.
type Config struct {
	Basedir  string `toml:"basedir"`
	DBLogger string `toml:"db_logger"` // "silent" or "info"
	Seller   Seller `toml:"seller"`

	Validator ValidatorConfig `toml:"validator"`
}

// ValidatorConfig locates the external XSD validator binary and the shipped
// schema/catalog assets.
type ValidatorConfig struct {
	BinaryPath  string `toml:"binary_path"`
	SchemaPath  string `toml:"schema_path"`
	CatalogPath string `toml:"catalog_path"`
}

// DataRoot is the fixed on-disk layout root for generated artifacts.
func (c *Config) DataRoot() string { return filepath.Join(c.Basedir, "data") }

// XMLDir is the output directory for generated FA(3) XML documents.
func (c *Config) XMLDir() string { return filepath.Join(c.DataRoot(), "invoices", "xml") }

// PDFDir is the output directory for rendered invoice PDFs.
func (c *Config) PDFDir() string { return filepath.Join(c.DataRoot(), "invoices", "pdf") }

// DBPath is the embedded database file path.
func (c *Config) DBPath() string { return filepath.Join(c.DataRoot(), "dashboard.db") }

// Load reads and parses path, falling back Basedir to the process's working
// directory when the configured one does not resolve to a directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	fi, err := os.Stat(cfg.Basedir)
	if err != nil || !fi.IsDir() {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.Basedir = wd
	}

	if cfg.DBLogger == "" {
		cfg.DBLogger = "silent"
	}
	return cfg, nil
}

// EnsureDataDirs creates the xml/ and pdf/ output directories on demand.
func (c *Config) EnsureDataDirs() error {
	for _, dir := range []string{c.XMLDir(), c.PDFDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return nil
}
