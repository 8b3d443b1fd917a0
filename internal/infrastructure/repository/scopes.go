package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate returns a GORM scope that takes an exclusive lock on the selected
// rows until the surrounding transaction ends (SELECT ... FOR UPDATE).
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// WithDeleted returns a GORM scope that includes soft-deleted rows. Used where
// a unique natural key must be honoured regardless of deletion.
func WithDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// InSeries returns a GORM scope that filters sales by receipt series
func InSeries(series string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("series = ?", series)
	}
}
