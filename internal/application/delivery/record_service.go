// Package delivery exposes the version-chain lifecycle for delivery
// records. One generic service covers every record type; the chain
// semantics live in the versioning store.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/projops/backend/internal/infrastructure/telemetry"
)

// RecordService drives the create/get/edit/delete/history lifecycle of one
// versioned record type. Edits close the current version and append a
// successor; deletes close without a successor. Closed versions are
// immutable history. Every lookup is scoped to the principal's tenant, so
// a key that exists under another tenant reads as an empty chain.
type RecordService[T versioning.Row] struct {
	recordType string
	store      versioning.Store[T]
}

// NewRecordService creates a record service for one record type.
// recordType names the type in spans and logs (e.g. "task").
func NewRecordService[T versioning.Row](recordType string, store versioning.Store[T]) *RecordService[T] {
	return &RecordService[T]{
		recordType: recordType,
		store:      store,
	}
}

// Create opens a new chain with row as version 1
func (s *RecordService[T]) Create(ctx context.Context, principal shared.Principal, row T) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, s.recordType, "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, s.recordType,
		telemetry.SpanAttrLogicalKey, row.LogicalKey(),
		telemetry.SpanAttrEditor, principal.Editor(),
	)

	created, err := s.store.CreateVersion(ctx, row, row.Versioning().StartMarker)
	if err != nil {
		telemetry.RecordError(span, err)
		var zero T
		return zero, fmt.Errorf("failed to create %s: %w", s.recordType, err)
	}

	return created, nil
}

// Get returns the current version of the record
func (s *RecordService[T]) Get(ctx context.Context, principal shared.Principal, key string) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, s.recordType, "get")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, s.recordType,
		telemetry.SpanAttrLogicalKey, key,
	)

	row, err := s.store.Current(ctx, principal.TenantID, key)
	if err != nil {
		telemetry.RecordError(span, err)
		var zero T
		return zero, err
	}

	return row, nil
}

// History returns every version of the record ordered by start marker
func (s *RecordService[T]) History(ctx context.Context, principal shared.Principal, key string) ([]T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, s.recordType, "history")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, s.recordType,
		telemetry.SpanAttrLogicalKey, key,
	)

	history, err := s.store.History(ctx, principal.TenantID, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load %s history: %w", s.recordType, err)
	}
	if len(history) == 0 {
		telemetry.RecordError(span, versioning.ErrNoCurrentVersion)
		return nil, versioning.ErrNoCurrentVersion
	}

	return history, nil
}

// Edit closes the current version and appends a successor produced by
// overlay, as one unit of work.
func (s *RecordService[T]) Edit(ctx context.Context, principal shared.Principal, key string, overlay func(T)) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, s.recordType, "edit")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, s.recordType,
		telemetry.SpanAttrLogicalKey, key,
		telemetry.SpanAttrEditor, principal.Editor(),
	)

	row, err := s.store.Edit(ctx, principal.TenantID, key, principal.Editor(), overlay)
	if err != nil {
		telemetry.RecordError(span, err)
		var zero T
		return zero, err
	}

	return row, nil
}

// Delete closes the current version without a successor, leaving the chain
// as history only.
func (s *RecordService[T]) Delete(ctx context.Context, principal shared.Principal, key string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, s.recordType, "delete")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, s.recordType,
		telemetry.SpanAttrLogicalKey, key,
		telemetry.SpanAttrEditor, principal.Editor(),
	)

	if err := s.store.Delete(ctx, principal.TenantID, key, principal.Editor(), time.Now()); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	return nil
}
