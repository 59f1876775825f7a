package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers from a fixed table and tracks peak concurrency.
type fakeClient struct {
	statuses map[string]nso.CheckStatus
	errs     map[string]error
	answerAs map[string]string
	delay    time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (f *fakeClient) Action(_ context.Context, _ string, _, _ interface{}) error {
	return nil
}

func (f *fakeClient) CheckVersion(_ context.Context, device, targetVersion string) (*nso.CheckResult, error) {
	f.calls.Add(1)

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	time.Sleep(f.delay)

	if err, ok := f.errs[device]; ok {
		return nil, err
	}

	status, ok := f.statuses[device]
	if !ok {
		status = nso.StatusOK
	}

	answered := device
	if name, ok := f.answerAs[device]; ok {
		answered = name
	}

	return &nso.CheckResult{
		Device:  answered,
		Status:  status,
		Message: fmt.Sprintf("%s checked against %s", device, targetVersion),
	}, nil
}

func byDevice(results []*nso.CheckResult) map[string]*nso.CheckResult {
	m := make(map[string]*nso.CheckResult, len(results))
	for _, r := range results {
		m[r.Device] = r
	}

	return m
}

func TestCheckDevices_OneResultPerDevice(t *testing.T) {
	t.Parallel()

	var (
		client  = &fakeClient{statuses: map[string]nso.CheckStatus{"r2": nso.StatusNOK}}
		devices = []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}
		chk     = NewChecker(logrus.New(), client, nil, Config{})
	)

	results, err := chk.CheckDevices(context.Background(), "17.3", devices)
	require.NoError(t, err)
	require.Len(t, results, len(devices))

	got := byDevice(results)
	require.Len(t, got, len(devices))
	assert.True(t, got["r1"].OK())
	assert.Equal(t, nso.StatusNOK, got["r2"].Status)
	assert.Equal(t, "r1 checked against 17.3", got["r1"].Message)
}

func TestCheckDevices_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	var (
		client  = &fakeClient{delay: 20 * time.Millisecond}
		devices = make([]string, 20)
	)

	for i := range devices {
		devices[i] = fmt.Sprintf("r%d", i)
	}

	results, err := NewChecker(logrus.New(), client, nil, Config{Workers: 3}).
		CheckDevices(context.Background(), "17.3", devices)
	require.NoError(t, err)
	require.Len(t, results, len(devices))

	assert.Equal(t, int32(len(devices)), client.calls.Load())
	assert.LessOrEqual(t, client.peak.Load(), int32(3))
}

func TestCheckDevices_FailuresStayLocal(t *testing.T) {
	t.Parallel()

	var (
		collector = metrics.NewCollector(logrus.New())
		client    = &fakeClient{
			errs: map[string]error{
				"r3": fmt.Errorf("%w: dial tcp: connection refused", nso.ErrConnection),
				"r4": fmt.Errorf("%w: missing check_device:output", nso.ErrMalformedResponse),
				"r5": &nso.HTTPStatusError{Code: http.StatusInternalServerError},
			},
		}
	)

	results, err := NewChecker(logrus.New(), client, collector, Config{}).
		CheckDevices(context.Background(), "17.3", []string{"r1", "r3", "r4", "r5"})
	require.NoError(t, err)

	got := byDevice(results)
	require.Len(t, got, 4)

	assert.True(t, got["r1"].OK())
	assert.Equal(t, &nso.CheckResult{
		Device:  "r3",
		Status:  nso.StatusNOK,
		Message: "Cannot connect to NSO to check r3",
	}, got["r3"])
	assert.Equal(t, nso.StatusError, got["r4"].Status)
	assert.Contains(t, got["r4"].Message, "malformed")
	assert.Equal(t, nso.StatusError, got["r5"].Status)

	summary := collector.GetSummary()
	assert.Equal(t, 4, summary.TotalChecks)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Errored)
	assert.Equal(t, 1, summary.Unreachable)
}

func TestCheckDevices_ForeignDeviceInAnswer(t *testing.T) {
	t.Parallel()

	client := &fakeClient{answerAs: map[string]string{"r1": "core", "r2": "core"}}

	results, err := NewChecker(logrus.New(), client, nil, Config{SortResults: true}).
		CheckDevices(context.Background(), "17.3", []string{"r1", "r2", "r3"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "r1", results[0].Device)
	assert.Equal(t, nso.StatusError, results[0].Status)
	assert.Contains(t, results[0].Message, `answered for device "core"`)
	assert.Equal(t, "r2", results[1].Device)
	assert.Equal(t, nso.StatusError, results[1].Status)
	assert.True(t, results[2].OK())
}

func TestCheckDevices_SortResults(t *testing.T) {
	t.Parallel()

	results, err := NewChecker(logrus.New(), &fakeClient{}, nil, Config{SortResults: true}).
		CheckDevices(context.Background(), "17.3", []string{"r3", "r1", "r2"})
	require.NoError(t, err)

	devices := make([]string, 0, len(results))
	for _, r := range results {
		devices = append(devices, r.Device)
	}

	assert.Equal(t, []string{"r1", "r2", "r3"}, devices)
}

func TestCheckDevices_EmptyInput(t *testing.T) {
	t.Parallel()

	chk := NewChecker(logrus.New(), &fakeClient{}, nil, Config{})

	results, err := chk.CheckDevices(context.Background(), "17.3", nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = chk.CheckDevices(context.Background(), "", []string{"r1"})
	require.ErrorIs(t, err, ErrEmptyTargetVersion)
}

func TestCheckDevices_Idempotent(t *testing.T) {
	t.Parallel()

	var (
		client  = &fakeClient{statuses: map[string]nso.CheckStatus{"r2": nso.StatusNOK, "r4": nso.StatusError}}
		devices = []string{"r1", "r2", "r3", "r4"}
		chk     = NewChecker(logrus.New(), client, nil, Config{Workers: 2})
	)

	first, err := chk.CheckDevices(context.Background(), "17.3", devices)
	require.NoError(t, err)

	second, err := chk.CheckDevices(context.Background(), "17.3", devices)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

// TestCheckDevices_AgainstRestconf exercises the real client against a fake NSO where some
// devices hang long enough to hit the request timeout.
func TestCheckDevices_AgainstRestconf(t *testing.T) {
	t.Parallel()

	var (
		release = make(chan struct{})
		once    sync.Once
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input struct {
				Device        string `json:"device"`
				TargetVersion string `json:"target_version"`
			} `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Input.Device == "slow" {
			select {
			case <-release:
			case <-r.Context().Done():
			}

			return
		}

		status := "OK"
		if req.Input.Device == "r2" {
			status = "NOK"
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"check_device:output": map[string]any{
				"device":        req.Input.Device,
				"check_status":  status,
				"check_message": "target " + req.Input.TargetVersion,
			},
		})
	}))
	defer srv.Close()
	defer once.Do(func() { close(release) })

	client := nso.NewClient(logrus.New(), nso.ClientConfig{Address: srv.URL})
	chk := NewChecker(logrus.New(), client, nil, Config{Timeout: 100 * time.Millisecond, SortResults: true})

	results, err := chk.CheckDevices(context.Background(), "17.3", []string{"r1", "r2", "slow"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, nso.StatusOK, results[0].Status)
	assert.Equal(t, nso.StatusNOK, results[1].Status)
	assert.Equal(t, "target 17.3", results[1].Message)
	assert.Equal(t, nso.UnreachableResult("slow"), results[2])
}
