package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "punctuation becomes hyphens", input: "St. Mary's School", expected: "st-mary-s-school"},
		{name: "already clean", input: "greenfield", expected: "greenfield"},
		{name: "mixed case and digits", input: "Apex Academy 2000", expected: "apex-academy-2000"},
		{name: "punctuation runs collapse", input: "A -- B", expected: "a-b"},
		{name: "leading and trailing junk trimmed", input: "  ***Delhi Public*** ", expected: "delhi-public"},
		{name: "only punctuation", input: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
