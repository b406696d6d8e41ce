package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keySequenceRow backs one named counter per tenant
type keySequenceRow struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(50);primaryKey"`
	NextVal  int64     `gorm:"not null"`
}

// TableName returns the table name for key sequences
func (keySequenceRow) TableName() string {
	return "key_sequences"
}

// GormKeySequence hands out business-key sequence numbers. The row is
// locked for the duration of the increment so two concurrent creators
// never mint the same key.
type GormKeySequence struct {
	db *gorm.DB
}

// NewGormKeySequence creates a new GormKeySequence
func NewGormKeySequence(db *gorm.DB) *GormKeySequence {
	return &GormKeySequence{db: db}
}

// Next returns the next sequence value for the tenant's named counter
func (s *GormKeySequence) Next(ctx context.Context, tenantID uuid.UUID, name string) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := keySequenceRow{TenantID: tenantID, Name: name, NextVal: 0}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND name = ?", tenantID, name).
			First(&row).Error; err != nil {
			return err
		}

		row.NextVal++
		value = row.NextVal
		return tx.Model(&keySequenceRow{}).
			Where("tenant_id = ? AND name = ?", tenantID, name).
			Update("next_val", row.NextVal).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
