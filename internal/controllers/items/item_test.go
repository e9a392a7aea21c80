package itemController

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid RFC3339 datetime",
			dateStr:     "2026-01-15T14:30:00Z",
			expectError: false,
		},
		{
			name:        "Valid plain date",
			dateStr:     "2026-01-15",
			expectError: false,
		},
		{
			name:        "Empty string",
			dateStr:     "",
			expectError: true,
			errorMsg:    "date is required",
		},
		{
			name:        "Invalid format",
			dateStr:     "15/01/2026",
			expectError: true,
			errorMsg:    "invalid date format, expected RFC3339 or YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDate(tt.dateStr)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				assert.True(t, result.IsZero())
			} else {
				assert.NoError(t, err)
				assert.False(t, result.IsZero())
				assert.True(t, result.After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name        string
		priceStr    string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid decimal price",
			priceStr:    "49.99",
			expectError: false,
		},
		{
			name:        "Empty string defaults to zero",
			priceStr:    "",
			expectError: false,
		},
		{
			name:        "Negative price rejected",
			priceStr:    "-10",
			expectError: true,
			errorMsg:    "price cannot be negative",
		},
		{
			name:        "Garbage input rejected",
			priceStr:    "ten dollars",
			expectError: true,
			errorMsg:    "invalid price format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parsePrice(tt.priceStr)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
			} else {
				assert.NoError(t, err)
				assert.False(t, result.IsNegative())
			}
		})
	}
}
