package nso

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) Client {
	t.Helper()

	return NewClient(logrus.New(), ClientConfig{
		Address:  url,
		Username: "admin",
		Password: "admin",
	})
}

func TestClient_CheckVersion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/restconf/data/check_device/check_version", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "admin", pass)

		var req checkVersionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"check_device:output": map[string]any{
				"device":        req.Input.Device,
				"check_status":  "OK",
				"check_message": "running " + req.Input.TargetVersion,
			},
		})
	}))
	defer srv.Close()

	result, err := newTestClient(t, srv.URL).CheckVersion(context.Background(), "r1", "17.3")
	require.NoError(t, err)

	assert.Equal(t, &CheckResult{Device: "r1", Status: StatusOK, Message: "running 17.3"}, result)
	assert.True(t, result.OK())
}

func TestClient_CheckVersionMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>"},
		{name: "missing output", body: `{"output": {}}`},
		{name: "missing device", body: `{"check_device:output": {"check_status": "OK"}}`},
		{name: "unknown status", body: `{"check_device:output": {"device": "r1", "check_status": "MAYBE"}}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).CheckVersion(context.Background(), "r1", "17.3")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestClient_HTTPStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "access denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CheckVersion(context.Background(), "r1", "17.3")

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "access denied", statusErr.Body)
}

func TestClient_ConnectionError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).CheckVersion(context.Background(), "r3", "17.3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestNewClient_BaseURL(t *testing.T) {
	t.Parallel()

	c := NewClient(logrus.New(), ClientConfig{Address: "http://127.0.0.1/", Port: 8080}).(*client)
	assert.Equal(t, "http://127.0.0.1:8080", c.baseURL)
	assert.Equal(t, DefaultCheckAction, c.checkAction)
}

func TestSynthesizedResults(t *testing.T) {
	t.Parallel()

	unreachable := UnreachableResult("r3")
	assert.Equal(t, &CheckResult{
		Device:  "r3",
		Status:  StatusNOK,
		Message: "Cannot connect to NSO to check r3",
	}, unreachable)
	assert.False(t, unreachable.OK())

	errored := ErrorResult("r4", ErrMalformedResponse)
	assert.Equal(t, StatusError, errored.Status)
	assert.Contains(t, errored.Message, "r4")
}
