package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/lychee-cup/internal/models"
)

// Postgres is a Blob backed by the documents table.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres wraps an open GORM handle. The documents table must already exist
// (see database.RunMigrations).
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var doc models.Document
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

// Put upserts the row: INSERT ... ON CONFLICT (key) DO UPDATE SET value, updated_at.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	doc := models.Document{Key: key, Value: string(value)}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	return nil
}
