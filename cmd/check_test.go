package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ethpandaops/nso-version-check/internal/config"
	"github.com/ethpandaops/nso-version-check/internal/suite"
	"github.com/ethpandaops/nso-version-check/internal/versioncheck"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersionCheck(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input struct {
				Device string `json:"device"`
			} `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		status := "OK"
		if req.Input.Device == "edge-2" {
			status = "NOK"
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"check_device:output": map[string]any{
				"device":        req.Input.Device,
				"check_status":  status,
				"check_message": "running 16.9",
			},
		})
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.NSO.Address = "http://" + u.Hostname()
	cfg.NSO.Port = port
	cfg.Check.SortResults = true

	devicesPath := filepath.Join(t.TempDir(), "devices.txt")
	require.NoError(t, os.WriteFile(devicesPath, []byte("edge-1\nedge-2\n"), 0o600))

	parser := suite.NewParser(nil)
	versioncheck.AddOptions(parser)
	require.NoError(t, parser.Set(versioncheck.OptionTargetVersion, "17.3"))
	require.NoError(t, parser.Set(versioncheck.OptionDevicesListPath, devicesPath))

	var buf bytes.Buffer

	result, err := runVersionCheck(context.Background(), logrus.New(), cfg, parser, &buf)
	require.NoError(t, err)

	assert.False(t, result.OK())
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, buf.String(), `FAILED TestRouterVersion[edge-2] - assert "NOK" == "OK" for edge-2`)
	assert.Contains(t, buf.String(), "1 of 2 devices failed")
}

func TestRunVersionCheck_NoOptions(t *testing.T) {
	parser := suite.NewParser(nil)
	versioncheck.AddOptions(parser)

	var buf bytes.Buffer

	result, err := runVersionCheck(context.Background(), logrus.New(), config.Default(), parser, &buf)
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Empty(t, result.Reports)
	assert.Contains(t, buf.String(), "no tests ran")
	assert.Contains(t, buf.String(), "No devices checked")
}
