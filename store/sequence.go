package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllocateNumberTx atomically bumps invoice_sequences(year, month).last_number
// and returns the new value, within the given transaction.
// Two concurrent allocations for the same (year, month) serialise at the
// unique index on (year, month); SQLite's single-writer transaction
// semantics give the same effect as a row lock here.
func AllocateNumberTx(tx *gorm.DB, year, month int) (int, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_number": gorm.Expr("last_number + 1"),
		}),
	}).Create(&InvoiceSequence{Year: year, Month: month, LastNumber: 1}).Error
	if err != nil {
		return 0, err
	}

	var seq InvoiceSequence
	if err := tx.Where("year = ? AND month = ?", year, month).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastNumber, nil
}

// PeekMaxNumber returns the current last_number for a (year, month) bucket,
// or 0 if the bucket does not exist yet. Used by tests and diagnostics.
func (s *Store) PeekMaxNumber(year, month int) (int, error) {
	var seq InvoiceSequence
	err := s.db.Where("year = ? AND month = ?", year, month).First(&seq).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return seq.LastNumber, nil
}
