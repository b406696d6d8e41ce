// Package ledger holds the capacity accounting shared by every draw-down
// kind: consumptions and receipt notes against purchase orders and
// milestones, allocations against budget lines.
//
// Balances are always recomputed from source rows; there is no maintained
// running counter anywhere in the system. This trades one aggregation query
// per mutation for freedom from counter-drift bugs. The read-check-write
// sequence runs without application-level locking, so two concurrent writers
// can both pass the check (see the service-level docs); the decision to keep
// that window open matches the product behavior this system replaces.
package ledger

import (
	"fmt"

	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Balance is the derived state of one capacity scope (or one narrowing
// inside a scope) at read time.
type Balance struct {
	Capacity  decimal.Decimal      `json:"capacity"`
	Used      decimal.Decimal      `json:"used"`
	Available decimal.Decimal      `json:"available"`
	Currency  valueobject.Currency `json:"currency"`
}

// NewBalance derives a balance from a scope capacity and the sum of its
// active draw-downs.
func NewBalance(capacity, used decimal.Decimal, currency valueobject.Currency) Balance {
	return Balance{
		Capacity:  capacity,
		Used:      used,
		Available: capacity.Sub(used),
		Currency:  currency,
	}
}

// Admits reports whether an additional draw-down of the given amount fits
// within the remaining capacity.
func (b Balance) Admits(amount decimal.Decimal) bool {
	return b.Used.Add(amount).LessThanOrEqual(b.Capacity)
}

// CapacityExceededError rejects a draw-down that would overrun its scope.
// It carries the computed shortfall data so callers can render an
// actionable message without re-querying.
type CapacityExceededError struct {
	ScopeKey  string               `json:"scope_key"`
	Narrowing string               `json:"narrowing,omitempty"`
	Requested decimal.Decimal      `json:"requested"`
	Available decimal.Decimal      `json:"available"`
	Currency  valueobject.Currency `json:"currency"`
}

// Error implements the error interface
func (e *CapacityExceededError) Error() string {
	scope := e.ScopeKey
	if e.Narrowing != "" {
		scope = fmt.Sprintf("%s/%s", e.ScopeKey, e.Narrowing)
	}
	return fmt.Sprintf("capacity exceeded for %s: requested %s %s, available %s %s",
		scope, e.Requested.StringFixed(2), e.Currency, e.Available.StringFixed(2), e.Currency)
}

// NewCapacityExceededError builds the rejection for a failed admit check
func NewCapacityExceededError(scopeKey, narrowing string, requested decimal.Decimal, b Balance) *CapacityExceededError {
	return &CapacityExceededError{
		ScopeKey:  scopeKey,
		Narrowing: narrowing,
		Requested: requested,
		Available: b.Available,
		Currency:  b.Currency,
	}
}

// CeilingExceededError rejects an allocation that breaks the sanity ceiling
// (a looser bound than the hard capacity check, reported as its own kind).
type CeilingExceededError struct {
	ScopeKey  string          `json:"scope_key"`
	Requested decimal.Decimal `json:"requested"`
	Ceiling   decimal.Decimal `json:"ceiling"`
}

// Error implements the error interface
func (e *CeilingExceededError) Error() string {
	return fmt.Sprintf("allocation of %s exceeds the sanity ceiling %s for %s",
		e.Requested.StringFixed(2), e.Ceiling.StringFixed(2), e.ScopeKey)
}
