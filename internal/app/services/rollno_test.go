package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeRollNo(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		instName string
		yearYY   string
		seq      int
		expected string
	}{
		{
			name:     "punctuation in name is skipped",
			code:     7,
			instName: "St. Mary's School",
			yearYY:   "25",
			seq:      3,
			expected: "0007ST250003",
		},
		{
			name:     "plain name",
			code:     12,
			instName: "Delhi Public School",
			yearYY:   "24",
			seq:      150,
			expected: "0012DE240150",
		},
		{
			name:     "lowercase name is uppercased",
			code:     1,
			instName: "greenfield academy",
			yearYY:   "25",
			seq:      1,
			expected: "0001GR250001",
		},
		{
			name:     "single letter name yields short tag",
			code:     3,
			instName: "X 2000",
			yearYY:   "25",
			seq:      9,
			expected: "0003X250009",
		},
		{
			name:     "no letters yields empty tag",
			code:     3,
			instName: "404",
			yearYY:   "25",
			seq:      9,
			expected: "0003250009",
		},
		{
			name:     "large code and seq keep four digits",
			code:     9999,
			instName: "Apex",
			yearYY:   "99",
			seq:      9999,
			expected: "9999AP999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeRollNo(tt.code, tt.instName, tt.yearYY, tt.seq)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRollNoPrefix(t *testing.T) {
	assert.Equal(t, "0007ST25", RollNoPrefix(7, "St. Mary's School", "25"))

	// Single digit years are padded to two.
	assert.Equal(t, "0007ST05", RollNoPrefix(7, "St. Mary's School", "5"))
}
