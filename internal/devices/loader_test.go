package devices

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "trims whitespace",
			input:    "  r1 \n\tr2\t\r\n",
			expected: []string{"r1", "r2"},
		},
		{
			name:     "skips blank lines",
			input:    "r1\n\n   \nr2\n",
			expected: []string{"r1", "r2"},
		},
		{
			name:     "skips comments",
			input:    "# core routers\nr1\n  # r2\n",
			expected: []string{"r1"},
		},
		{
			name:     "keeps first occurrence of duplicates",
			input:    "r2\nr1\n r2 \n",
			expected: []string{"r2", "r1"},
		},
		{
			name:     "no trailing newline",
			input:    "10.0.0.1",
			expected: []string{"10.0.0.1"},
		},
		{
			name:     "empty",
			input:    "",
			expected: []string{},
		},
	}

	loader := NewLoader(logrus.New())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "devices.txt")
	require.NoError(t, os.WriteFile(path, []byte("r1\nr2\n"), 0o600))

	got, err := NewLoader(logrus.New()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, got)
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	loader := NewLoader(logrus.New())

	_, err := loader.Load("")
	require.ErrorIs(t, err, ErrNoPath)

	_, err = loader.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
