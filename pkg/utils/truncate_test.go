package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short input untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"ascii truncation", "hello world", 5, "hello..."},
		{"zero max", "hello", 0, ""},
		{"multibyte kept whole", "żółć żółć", 4, "żółć..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max))
		})
	}
}

func TestTruncateRunesNeverSplitsRunes(t *testing.T) {
	// A cut inside a multi-byte sequence would produce invalid UTF-8.
	in := strings.Repeat("ż", 100)
	for max := 1; max < 10; max++ {
		out := TruncateRunes(in, max)
		assert.True(t, utf8.ValidString(out), "max=%d produced invalid UTF-8", max)
		assert.Equal(t, max, utf8.RuneCountInString(strings.TrimSuffix(out, "...")))
	}
}
