package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "thousands with decimals",
			input:    "1.234,50",
			expected: "1234.5",
		},
		{
			name:     "plain integer",
			input:    "119000",
			expected: "119000",
		},
		{
			name:     "thousands only",
			input:    "2.500.000",
			expected: "2500000",
		},
		{
			name:     "negative amount",
			input:    "-45.000",
			expected: "-45000",
		},
		{
			name:     "currency symbol and spaces",
			input:    "$ 1.234.567",
			expected: "1234567",
		},
		{
			name:     "CLP prefix",
			input:    "CLP 50.000",
			expected: "50000",
		},
		{
			name:     "empty string is zero",
			input:    "",
			expected: "0",
		},
		{
			name:     "whitespace only is zero",
			input:    "   ",
			expected: "0",
		},
		{
			name:    "garbage",
			input:   "n/a",
			wantErr: true,
		},
		{
			name:    "two decimal marks",
			input:   "12,34,56",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			expected, perr := decimal.NewFromString(tt.expected)
			require.NoError(t, perr)
			assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
		})
	}
}

func TestParseFlexibleAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "comma as thousands",
			input:    "$151,077",
			expected: "151077",
		},
		{
			name:     "dot as thousands",
			input:    "$450.000",
			expected: "450000",
		},
		{
			name:     "anglo decimals",
			input:    "1,234.56",
			expected: "1234.56",
		},
		{
			name:     "chilean decimals",
			input:    "1.234,50",
			expected: "1234.5",
		},
		{
			name:     "single comma with two digits is decimal",
			input:    "1500,50",
			expected: "1500.5",
		},
		{
			name:     "single dot with one digit is decimal",
			input:    "99.5",
			expected: "99.5",
		},
		{
			name:     "plain integer",
			input:    "80000",
			expected: "80000",
		},
		{
			name:     "repeated thousands groups",
			input:    "1,234,567",
			expected: "1234567",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			expected, perr := decimal.NewFromString(tt.expected)
			require.NoError(t, perr)
			assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{
			name:     "CLP has no decimals and dot grouping",
			amount:   "1234567",
			currency: "CLP",
			expected: "$1.234.567",
		},
		{
			name:     "CLP negative",
			amount:   "-45000",
			currency: "CLP",
			expected: "-$45.000",
		},
		{
			name:     "lowercase code accepted",
			amount:   "50000",
			currency: "clp",
			expected: "$50.000",
		},
		{
			name:     "unknown currency falls back to fixed decimals",
			amount:   "1234.5",
			currency: "XXQ",
			expected: "1234.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, FormatAmount(amount, tt.currency))
		})
	}
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(decimal.Zero))
	assert.True(t, IsZero(decimal.NewFromInt(0)))
	assert.False(t, IsZero(decimal.NewFromInt(1)))
	assert.False(t, IsZero(decimal.NewFromFloat(-0.01)))
}
