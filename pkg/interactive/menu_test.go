package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_Labels(t *testing.T) {
	menu := &Menu{Options: []MenuOption{
		{Name: "Run Check", Description: "Check device firmware versions"},
		{Name: "Show Config"},
	}}

	labels, byLabel := menu.labels()

	require.Equal(t, []string{
		"Run Check - Check device firmware versions",
		"Show Config",
		QuitLabel,
	}, labels)
	assert.Equal(t, "Show Config", byLabel["Show Config"].Name)
	assert.NotContains(t, byLabel, QuitLabel)
}

func TestWaitForLine(t *testing.T) {
	in := strings.NewReader("ignored\nleft over\n")

	var out bytes.Buffer

	waitForLine(in, &out)

	assert.Contains(t, out.String(), "Press Enter")

	rest := make([]byte, 64)
	n, _ := in.Read(rest)
	assert.Equal(t, "left over\n", string(rest[:n]))
}
