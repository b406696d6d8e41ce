package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"missing scope", "SCOPE_NOT_FOUND", ErrCodeNotFound},
		{"missing narrowing", "NARROWING_NOT_FOUND", ErrCodeNotFound},
		{"closed chain", "NO_CURRENT_VERSION", ErrCodeNotFound},
		{"duplicate order number", "PO_NUMBER_EXISTS", ErrCodeAlreadyExists},
		{"duplicate open version", "DUPLICATE_ACTIVE", ErrCodeConflict},
		{"racing editors", "ALREADY_CLOSED", ErrCodeConcurrencyConflict},
		{"capacity overrun", "CAPACITY_EXCEEDED", ErrCodeCapacityExceeded},
		{"ceiling overrun", "CEILING_EXCEEDED", ErrCodeCeilingExceeded},
		{"currency mismatch", "CURRENCY_MISMATCH", ErrCodeCurrencyMismatch},
		{"invalid amount folds into invalid input", "INVALID_AMOUNT", ErrCodeInvalidInput},
		{"invalid draw-down kind folds into invalid input", "INVALID_DRAW_DOWN_KIND", ErrCodeInvalidInput},
		{"bare INVALID_ prefix is too short to fold", "INVALID_", "INVALID_"},
		{"already standardized code passes through", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown code passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict maps to 409", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"capacity exceeded maps to 422", ErrCodeCapacityExceeded, http.StatusUnprocessableEntity},
		{"ceiling exceeded maps to 422", ErrCodeCeilingExceeded, http.StatusUnprocessableEntity},
		{"currency mismatch maps to 422", ErrCodeCurrencyMismatch, http.StatusUnprocessableEntity},
		{"invalid input maps to 400", ErrCodeInvalidInput, http.StatusBadRequest},
		{"unauthorized maps to 401", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"unknown code defaults to 500", "SOME_UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}
