package research

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"zero limit returns input", "hello", 0, "hello"},
		{"cut inside a rune backs up", "abécd", 3, "ab"}, // é is 2 bytes starting at index 2
		{"cut after a rune keeps it", "abécd", 4, "abé"},
		{"multi-byte only", "日本語", 4, "日"}, // 3-byte runes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateText(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateTextAlwaysValid(t *testing.T) {
	s := strings.Repeat("é日x", 50)
	for limit := 1; limit < len(s); limit += 7 {
		got := truncateText(s, limit)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), limit)
	}
}
