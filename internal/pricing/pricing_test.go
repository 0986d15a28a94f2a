package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/raditia/gerai/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    decimal.Decimal
		expectedErr error
	}{
		{
			name:     "given currency prefixed string should strip and parse",
			input:    "$1,234.50",
			expected: decimal.RequireFromString("1234.50"),
		},
		{
			name:     "given bare integer should return it unchanged",
			input:    42,
			expected: decimal.NewFromInt(42),
		},
		{
			name:     "given float should return it unchanged",
			input:    float64(19.99),
			expected: decimal.NewFromFloat(19.99),
		},
		{
			name:     "given numeric string should parse",
			input:    "250",
			expected: decimal.NewFromInt(250),
		},
		{
			name:     "given prefixed amount without separators should parse",
			input:    "KES 500",
			expected: decimal.NewFromInt(500),
		},
		{
			name:        "given empty string should return unparsable",
			input:       "",
			expectedErr: inErrors.ErrUnparsablePrice,
		},
		{
			name:        "given string without digits should return unparsable",
			input:       "free",
			expectedErr: inErrors.ErrUnparsablePrice,
		},
		{
			name:        "given unsupported type should return unparsable",
			input:       []string{"10"},
			expectedErr: inErrors.ErrUnparsablePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := Parse(tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.True(
				t,
				tt.expected.Equal(actual),
				"expected %s got %s",
				tt.expected,
				actual,
			)
		})
	}
}

func TestOrZeroTreatsUnparsableAsZero(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(OrZero("")))
	assert.True(t, decimal.NewFromInt(42).Equal(OrZero(42)))
}

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		expectedValid bool
		expected      decimal.Decimal
	}{
		{
			name:          "bare number",
			payload:       `10.5`,
			expectedValid: true,
			expected:      decimal.NewFromFloat(10.5),
		},
		{
			name:          "currency prefixed string",
			payload:       `"$1,234.50"`,
			expectedValid: true,
			expected:      decimal.RequireFromString("1234.50"),
		},
		{
			name:          "empty string is invalid not fatal",
			payload:       `""`,
			expectedValid: false,
		},
		{
			name:          "null is invalid not fatal",
			payload:       `null`,
			expectedValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Price{}
			err := json.Unmarshal([]byte(tt.payload), &p)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedValid, p.Valid)
			if tt.expectedValid {
				assert.True(t, tt.expected.Equal(p.Amount))
				return
			}
			assert.True(t, decimal.Zero.Equal(p.Decimal()))
		})
	}
}
