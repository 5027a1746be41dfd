package logutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxLines int
		maxLen   int
		prefix   string
		want     []string
	}{
		{"fits", "short", 0, 10, "- ", []string{"short"}},
		{"exact fit", "abcd", 0, 4, "- ", []string{"abcd"}},
		{"unlimited", "abcdefghij", 0, 4, "- ", []string{"abcd", "- ef", "- gh", "- ij"}},
		{"capped", "abcdefghij", 2, 4, "- ", []string{"abcd", "- ef"}},
		{"ragged tail", "abcdefghi", 0, 4, "- ", []string{"abcd", "- ef", "- gh", "- i"}},
		{"no prefix", "abcdefgh", 0, 3, "", []string{"abc", "def", "gh"}},
		{"runes", "ééééé", 0, 3, "", []string{"ééé", "éé"}},
		{"prefix longer than line", "abcdef", 0, 2, "----", []string{"ab", "----c", "----d", "----e", "----f"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WrapLine(tc.s, tc.maxLines, tc.maxLen, tc.prefix))
		})
	}
}
