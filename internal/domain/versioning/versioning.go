// Package versioning defines the append-only version-chain discipline shared
// by every temporally versioned record in the system (projects, tasks,
// stories, sprints, releases, budget lines, ...).
//
// A logical record is represented by a chain of physical rows sharing one
// logical key. Each row carries a start marker (activation time), a nullable
// end marker and the editor who closed it. At most one row per logical key is
// open (end marker null) at any time; closed rows are immutable history.
// An edit closes the current row and inserts a successor in one unit of work.
// A delete closes the current row with no successor.
package versioning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
)

// Version chain errors
var (
	// ErrNoCurrentVersion is returned when a logical key has no open row,
	// either because it was never created or because it was deleted.
	ErrNoCurrentVersion = shared.NewDomainError("NO_CURRENT_VERSION", "No current version exists for this record")

	// ErrAlreadyClosed is returned when a close races another editor:
	// the chain has rows, but none of them is open anymore.
	ErrAlreadyClosed = shared.NewDomainError("ALREADY_CLOSED", "Current version was already closed by another editor")

	// ErrDuplicateActive is returned when createVersion would produce a
	// second open row for the same logical key. Callers must close the
	// current row first, never create without closing.
	ErrDuplicateActive = shared.NewDomainError("DUPLICATE_ACTIVE", "An active version already exists for this record")
)

// VersionFields are the chain bookkeeping columns embedded in every
// versioned row type.
type VersionFields struct {
	StartMarker time.Time  `gorm:"not null;index" json:"start_marker"`
	EndMarker   *time.Time `gorm:"index" json:"end_marker,omitempty"`
	LastEditor  string     `gorm:"type:varchar(200)" json:"last_editor,omitempty"`
}

// IsCurrent reports whether this row is the open version of its chain
func (v VersionFields) IsCurrent() bool {
	return v.EndMarker == nil
}

// Open initializes the fields for a freshly created version
func (v *VersionFields) Open(at time.Time) {
	v.StartMarker = at
	v.EndMarker = nil
	v.LastEditor = ""
}

// Close stamps the end marker and the closing editor
func (v *VersionFields) Close(editor string, at time.Time) {
	v.EndMarker = &at
	v.LastEditor = editor
}

// RecordBase provides identity for one physical row of a version chain.
// Each version is its own row with its own surrogate id; the logical key
// lives on the concrete row type.
type RecordBase struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	VersionFields
}

// NewRecordBase creates the physical identity for a fresh version row
func NewRecordBase(at time.Time) RecordBase {
	var base RecordBase
	base.BeginVersion(at)
	return base
}

// BeginVersion gives the row a fresh physical identity and opens it as the
// new current version. The store calls this on the successor copy during an
// edit so the closed predecessor keeps its own row untouched.
func (r *RecordBase) BeginVersion(at time.Time) {
	r.ID = uuid.New()
	r.CreatedAt = at
	r.UpdatedAt = at
	r.Open(at)
}

// Versioning exposes the embedded chain fields
func (r *RecordBase) Versioning() *VersionFields {
	return &r.VersionFields
}

// Row is the contract every versioned row type satisfies.
type Row interface {
	// LogicalKey returns the stable business identifier shared by all
	// physical rows of the chain.
	LogicalKey() string
	// Tenant returns the owning tenant of the chain. Logical keys are only
	// unique within a tenant (sequence-minted business keys restart at
	// 000001 per tenant), so every chain lookup must carry it.
	Tenant() uuid.UUID
	// Versioning exposes the embedded chain fields for the store.
	Versioning() *VersionFields
	// BeginVersion resets the physical identity and opens the row as a
	// fresh version.
	BeginVersion(at time.Time)
}

// Store maintains version chains for one row type T. A chain is identified
// by (tenantID, key); the same logical key under two tenants names two
// unrelated chains.
type Store[T Row] interface {
	// Current returns the single open row, or ErrNoCurrentVersion.
	Current(ctx context.Context, tenantID uuid.UUID, key string) (T, error)

	// History returns all rows of the chain ordered by start marker.
	History(ctx context.Context, tenantID uuid.UUID, key string) ([]T, error)

	// CloseCurrent closes the open row, recording the editor. Returns
	// ErrNoCurrentVersion if the chain is empty, ErrAlreadyClosed if the
	// chain exists but its open row was closed concurrently.
	CloseCurrent(ctx context.Context, tenantID uuid.UUID, key string, editor string, at time.Time) (T, error)

	// CreateVersion inserts row as a new open version of the chain named
	// by the row's own tenant and logical key. Returns ErrDuplicateActive
	// if that chain already has an open row.
	CreateVersion(ctx context.Context, row T, at time.Time) (T, error)

	// Edit atomically closes the current row and inserts a successor
	// produced by overlay, which receives a copy of the current row and
	// mutates the fields that change. Fails with ErrNoCurrentVersion if
	// the chain has no open row.
	Edit(ctx context.Context, tenantID uuid.UUID, key string, editor string, overlay func(T)) (T, error)

	// Delete closes the current row without inserting a successor,
	// leaving the chain with history only.
	Delete(ctx context.Context, tenantID uuid.UUID, key string, editor string, at time.Time) error
}
