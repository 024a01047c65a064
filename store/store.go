package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the GORM database connection.
type Store struct {
	db *gorm.DB
}

// LogMode selects GORM's logger verbosity.
type LogMode string

const (
	LogSilent LogMode = "silent"
	LogInfo   LogMode = "info"
)

// Open creates (if needed) and opens the embedded SQLite database at path,
// enabling foreign keys and WAL journaling, then runs AutoMigrate so the
// schema is self-creating and idempotent.
func Open(path string, mode LogMode) (*Store, error) {
	gcfg := &gorm.Config{}
	if mode == LogInfo {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	db, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(&Client{}, &Invoice{}, &InvoiceItem{}, &InvoiceSequence{})
}

// DB exposes the underlying *gorm.DB for advanced callers (e.g. the
// invoice service composing cross-package transactions). Kept narrow on
// purpose: most callers should use the typed methods below.
func (s *Store) DB() *gorm.DB { return s.db }
