package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		check    func(error) bool
		expected bool
	}{
		{
			name:     "wrapped conflict error is detected",
			err:      Wrap(ErrConflictingMarkers, "declaration Event"),
			check:    IsConflictError,
			expected: true,
		},
		{
			name:     "plain error is not a conflict",
			err:      New("something else"),
			check:    IsConflictError,
			expected: false,
		},
		{
			name:     "wrapped unsupported type is detected",
			err:      Wrapf(ErrUnsupportedType, "field %s", "payload"),
			check:    IsUnsupportedTypeError,
			expected: true,
		},
		{
			name:     "double-wrapped write error is detected",
			err:      Wrap(Wrap(ErrUnwritableOutput, "user.g.dart"), "emit"),
			check:    IsWriteError,
			expected: true,
		},
		{
			name:     "nil error",
			err:      nil,
			check:    IsWriteError,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.check(tt.err))
		})
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrUnsupportedType, "field widget of Event")
	assert.Contains(t, err.Error(), "field widget of Event")
	assert.Contains(t, err.Error(), "unsupported type")
}
