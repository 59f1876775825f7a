package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{in: 500 * time.Microsecond, expected: "500µs"},
		{in: 250 * time.Millisecond, expected: "250ms"},
		{in: 1500 * time.Millisecond, expected: "1.5s"},
		{in: 90 * time.Second, expected: "1.5m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 50.0, Percentage(1, 2), 0.001)
	assert.Zero(t, Percentage(3, 0))
}
