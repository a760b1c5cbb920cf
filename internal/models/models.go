// Package models defines the database tables the API owns.
//
// The tournament itself is not normalised into tables. It lives as one JSON document per key
// (the same shape the front end reads and writes), so the only table is a small key/value store.
// The struct field tags tell GORM how each column is declared; the authoritative schema is the
// SQL in migrations/.
package models

import "time"

// Document is one stored JSON blob, addressed by Key.
// Value holds the raw JSON text; Postgres stores it as jsonb.
type Document struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time // GORM sets this on create
	UpdatedAt time.Time // GORM refreshes this on every save
}

// TableName pins the table name so it matches the migration regardless of naming strategy.
func (Document) TableName() string {
	return "documents"
}
