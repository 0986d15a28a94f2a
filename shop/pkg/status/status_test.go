package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	commonErrors "github.com/raditia/gerai/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected error
	}{
		{name: "pending can be approved", from: Pending, to: Approved, expected: nil},
		{name: "pending can be rejected", from: Pending, to: Rejected, expected: nil},
		{name: "rejected can resubmit", from: Rejected, to: Pending, expected: nil},
		{
			name:     "approved is terminal",
			from:     Approved,
			to:       Rejected,
			expected: commonErrors.ErrInvalidTransition,
		},
		{
			name:     "pending cannot skip to pending",
			from:     Pending,
			to:       Pending,
			expected: commonErrors.ErrInvalidTransition,
		},
		{
			name:     "rejected cannot jump to approved",
			from:     Rejected,
			to:       Approved,
			expected: commonErrors.ErrInvalidTransition,
		},
		{
			name:     "unknown status has no moves",
			from:     "archived",
			to:       Pending,
			expected: commonErrors.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.from, tt.to)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
