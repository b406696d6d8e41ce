package delivery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Business-key prefixes for the record types that use human-readable
// identifiers. The remaining record types key their chains by uuid.
const (
	TaskKeyFormat          = "TASK-%06d"
	UserStoryKeyFormat     = "US-%06d"
	SolutionStoryKeyFormat = "SS-%06d"
)

// FormatTaskKey renders a task business key such as TASK-000123
func FormatTaskKey(seq int64) string {
	return fmt.Sprintf(TaskKeyFormat, seq)
}

// FormatUserStoryKey renders a user story business key such as US-000042
func FormatUserStoryKey(seq int64) string {
	return fmt.Sprintf(UserStoryKeyFormat, seq)
}

// FormatSolutionStoryKey renders a solution story business key such as SS-000042
func FormatSolutionStoryKey(seq int64) string {
	return fmt.Sprintf(SolutionStoryKeyFormat, seq)
}

// NewChainKey mints a logical key for record types without business keys
func NewChainKey() string {
	return uuid.NewString()
}

// KeySequence hands out monotonically increasing sequence numbers per
// tenant and record type, backing the human-readable business keys.
type KeySequence interface {
	Next(ctx context.Context, tenantID uuid.UUID, name string) (int64, error)
}
