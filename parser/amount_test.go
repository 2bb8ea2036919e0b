package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"plain", "900", 900, false},
		{"dot thousands", "1.200", 1200, false},
		{"space thousands", "1 200", 1200, false},
		{"nbsp thousands", "1\u00a0200", 1200, false},
		{"narrow nbsp thousands", "12\u202f500", 12500, false},
		{"fraction truncated", "760,71", 760, false},
		{"fraction not rounded up", "899,99", 899, false},
		{"thousands and fraction", "2.919,57", 2919, false},
		{"zero", "0", 0, false},

		{"empty", "", 0, true},
		{"only separators", ". ", 0, true},
		{"only fraction", ",50", 0, true},
		{"letters", "12a0", 0, true},
		{"negative", "-300", 0, true},
		{"overflow", "99999999999999999999999", 0, true},
		{"largest accepted", "1.000.000.000", 1000000000, false},
		{"above bound", "1.000.000.001", 0, true},
		{"max int", "9223372036854775807", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidAmount), "ParseAmount(%q) error = %v", tt.input, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
