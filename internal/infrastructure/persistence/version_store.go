package persistence

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/versioning"
	"gorm.io/gorm"
)

// GormVersionStore is the gorm-backed version-chain store. One instance
// serves one row type; keyColumn names the logical-key column of that
// type's table. Chains are scoped by tenant: sequence-minted business keys
// restart per tenant, so (tenant_id, keyColumn) names the chain.
//
// The exactly-one-current invariant is held by closing through a single
// conditional UPDATE (`... AND end_marker IS NULL`): of two racing closers
// only one affects a row, the other reads zero rows affected and gets
// ErrAlreadyClosed. A partial unique index on (tenant_id, keyColumn) WHERE
// end_marker IS NULL backs the same invariant on the insert side.
type GormVersionStore[T versioning.Row] struct {
	db        *gorm.DB
	keyColumn string
}

// NewGormVersionStore creates a version store for one row type
func NewGormVersionStore[T versioning.Row](db *gorm.DB, keyColumn string) *GormVersionStore[T] {
	return &GormVersionStore[T]{
		db:        db,
		keyColumn: keyColumn,
	}
}

// newRow allocates a zero row. T is always a pointer type, so the zero
// value of T itself would be nil.
func (s *GormVersionStore[T]) newRow() T {
	var zero T
	return reflect.New(reflect.TypeOf(zero).Elem()).Interface().(T)
}

// clone returns a shallow copy of row as a new allocation
func (s *GormVersionStore[T]) clone(row T) T {
	copied := s.newRow()
	reflect.ValueOf(copied).Elem().Set(reflect.ValueOf(row).Elem())
	return copied
}

func (s *GormVersionStore[T]) chainScope(tx *gorm.DB, tenantID uuid.UUID, key string) *gorm.DB {
	return tx.Where("tenant_id = ? AND "+s.keyColumn+" = ?", tenantID, key)
}

func (s *GormVersionStore[T]) currentTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, key string) (T, error) {
	row := s.newRow()
	err := s.chainScope(tx.WithContext(ctx), tenantID, key).
		Where("end_marker IS NULL").
		First(row).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, versioning.ErrNoCurrentVersion
		}
		return zero, err
	}
	return row, nil
}

func (s *GormVersionStore[T]) chainLengthTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, key string) (int64, error) {
	var count int64
	err := s.chainScope(tx.WithContext(ctx).Model(s.newRow()), tenantID, key).
		Count(&count).Error
	return count, err
}

// closeTx runs the conditional close. It distinguishes an empty chain from
// a concurrently closed one by the chain length.
func (s *GormVersionStore[T]) closeTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, key, editor string, at time.Time) error {
	result := s.chainScope(tx.WithContext(ctx).Model(s.newRow()), tenantID, key).
		Where("end_marker IS NULL").
		Updates(map[string]interface{}{
			"end_marker":  at,
			"last_editor": editor,
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		length, err := s.chainLengthTx(ctx, tx, tenantID, key)
		if err != nil {
			return err
		}
		if length == 0 {
			return versioning.ErrNoCurrentVersion
		}
		return versioning.ErrAlreadyClosed
	}
	return nil
}

// Current returns the single open row of the chain
func (s *GormVersionStore[T]) Current(ctx context.Context, tenantID uuid.UUID, key string) (T, error) {
	return s.currentTx(ctx, s.db, tenantID, key)
}

// History returns all rows of the chain ordered by start marker
func (s *GormVersionStore[T]) History(ctx context.Context, tenantID uuid.UUID, key string) ([]T, error) {
	var rows []T
	err := s.chainScope(s.db.WithContext(ctx), tenantID, key).
		Order("start_marker ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CloseCurrent closes the open row, recording the editor
func (s *GormVersionStore[T]) CloseCurrent(ctx context.Context, tenantID uuid.UUID, key, editor string, at time.Time) (T, error) {
	var closed T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.closeTx(ctx, tx, tenantID, key, editor, at); err != nil {
			return err
		}

		row := s.newRow()
		if err := s.chainScope(tx.WithContext(ctx), tenantID, key).
			Order("start_marker DESC").
			First(row).Error; err != nil {
			return err
		}
		closed = row
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return closed, nil
}

// CreateVersion inserts row as a new open version of its chain
func (s *GormVersionStore[T]) CreateVersion(ctx context.Context, row T, at time.Time) (T, error) {
	tenantID := row.Tenant()
	key := row.LogicalKey()
	v := row.Versioning()
	v.StartMarker = at
	v.EndMarker = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := s.chainScope(tx.WithContext(ctx).Model(s.newRow()), tenantID, key).
			Where("end_marker IS NULL").
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return versioning.ErrDuplicateActive
		}
		return tx.WithContext(ctx).Create(row).Error
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return row, nil
}

// Edit atomically closes the current row and inserts a successor produced
// by overlaying the changed fields on a copy of it.
func (s *GormVersionStore[T]) Edit(ctx context.Context, tenantID uuid.UUID, key, editor string, overlay func(T)) (T, error) {
	at := time.Now()

	var successor T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.currentTx(ctx, tx, tenantID, key)
		if err != nil {
			return err
		}

		if err := s.closeTx(ctx, tx, tenantID, key, editor, at); err != nil {
			return err
		}

		next := s.clone(current)
		next.BeginVersion(at)
		overlay(next)
		if next.LogicalKey() != key {
			return fmt.Errorf("overlay must not change the logical key (was %q, got %q)", key, next.LogicalKey())
		}
		if next.Tenant() != tenantID {
			return fmt.Errorf("overlay must not change the tenant of the chain")
		}

		if err := tx.WithContext(ctx).Create(next).Error; err != nil {
			return err
		}
		successor = next
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return successor, nil
}

// Delete closes the current row without inserting a successor
func (s *GormVersionStore[T]) Delete(ctx context.Context, tenantID uuid.UUID, key, editor string, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.closeTx(ctx, tx, tenantID, key, editor, at)
	})
}
