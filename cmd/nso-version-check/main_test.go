package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		envFile string
		runTUI  bool
		wantErr bool
	}{
		{name: "no args", args: nil, runTUI: true},
		{name: "env only", args: []string{"--env", "lab.env"}, envFile: "lab.env", runTUI: true},
		{name: "env equals only", args: []string{"--env=lab.env"}, envFile: "lab.env", runTUI: true},
		{name: "subcommand", args: []string{"show-config"}},
		{name: "subcommand with env", args: []string{"check", "--env", "lab.env", "--target-version", "17.3"}, envFile: "lab.env"},
		{name: "env without value", args: []string{"--env"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envFile, runTUI, err := parseArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.envFile, envFile)
			assert.Equal(t, tt.runTUI, runTUI)
		})
	}
}
