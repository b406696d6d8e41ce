package delivery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatTaskKey(t *testing.T) {
	assert.Equal(t, "TASK-000001", FormatTaskKey(1))
	assert.Equal(t, "TASK-000123", FormatTaskKey(123))
	assert.Equal(t, "TASK-1000000", FormatTaskKey(1000000))
}

func TestFormatUserStoryKey(t *testing.T) {
	assert.Equal(t, "US-000042", FormatUserStoryKey(42))
}

func TestFormatSolutionStoryKey(t *testing.T) {
	assert.Equal(t, "SS-000007", FormatSolutionStoryKey(7))
}

func TestNewChainKey(t *testing.T) {
	key := NewChainKey()

	_, err := uuid.Parse(key)
	assert.NoError(t, err)
	assert.NotEqual(t, key, NewChainKey())
}
