// Package checker runs NSO version checks for a batch of devices in parallel.
package checker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 5
	defaultTimeout = 30 * time.Second
)

// ErrEmptyTargetVersion is returned when CheckDevices is called without a target version.
var ErrEmptyTargetVersion = errors.New("target version is empty")

// Checker produces one check result per device.
type Checker interface {
	Start(ctx context.Context) error
	Stop() error
	// CheckDevices checks every device against targetVersion. Results are returned in
	// completion order unless sorting is enabled. Failures to reach NSO are reported as
	// results, never as errors.
	CheckDevices(ctx context.Context, targetVersion string, devices []string) ([]*nso.CheckResult, error)
}

// Config configures a Checker.
type Config struct {
	Workers int
	// Timeout bounds each request. Zero means the default, negative disables it.
	Timeout     time.Duration
	SortResults bool
}

type checker struct {
	client      nso.Client
	metrics     metrics.Collector
	workers     int
	timeout     time.Duration
	sortResults bool
	log         logrus.FieldLogger
}

// NewChecker creates a new device checker. collector may be nil.
func NewChecker(log logrus.FieldLogger, client nso.Client, collector metrics.Collector, cfg Config) Checker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &checker{
		client:      client,
		metrics:     collector,
		workers:     workers,
		timeout:     timeout,
		sortResults: cfg.SortResults,
		log:         log.WithField("component", "device_checker"),
	}
}

func (c *checker) Start(_ context.Context) error {
	c.log.WithFields(logrus.Fields{
		"workers": c.workers,
		"timeout": c.timeout,
	}).Debug("device checker started")

	return nil
}

func (c *checker) Stop() error {
	c.log.Debug("device checker stopped")

	return nil
}

func (c *checker) CheckDevices(ctx context.Context, targetVersion string, devices []string) ([]*nso.CheckResult, error) {
	if targetVersion == "" {
		return nil, ErrEmptyTargetVersion
	}

	var (
		start     = time.Now()
		log       = c.log.WithField("target_version", targetVersion)
		completed = make(chan *nso.CheckResult, len(devices))
		sem       = make(chan struct{}, c.workers)
		g         errgroup.Group
	)

	log.WithField("devices", len(devices)).Info("checking devices")

	for _, device := range devices {
		device := device
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			completed <- c.checkDevice(ctx, log, device, targetVersion)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("checking devices: %w", err)
	}

	close(completed)

	results := make([]*nso.CheckResult, 0, len(devices))
	for result := range completed {
		results = append(results, result)
	}

	if c.sortResults {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Device < results[j].Device
		})
	}

	passed := 0

	for _, result := range results {
		if result.OK() {
			passed++
		}
	}

	log.WithFields(logrus.Fields{
		"total":    len(results),
		"passed":   passed,
		"failed":   len(results) - passed,
		"duration": time.Since(start),
	}).Info("device checks complete")

	return results, nil
}

// checkDevice runs the remote check for a single device and never fails: problems are
// converted into NOK (unreachable) or ERROR results. The result always names device.
func (c *checker) checkDevice(ctx context.Context, log logrus.FieldLogger, device, targetVersion string) *nso.CheckResult {
	var (
		start       = time.Now()
		unreachable bool
	)

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc

		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.client.CheckVersion(reqCtx, device, targetVersion)

	if err == nil && result.Device != device {
		err = fmt.Errorf("%w: answered for device %q", nso.ErrMalformedResponse, result.Device)
	}

	switch {
	case err == nil:
	case errors.Is(err, nso.ErrConnection):
		log.WithError(err).WithField("device", device).Warn("cannot reach nso")

		unreachable = true
		result = nso.UnreachableResult(device)
	default:
		log.WithError(err).WithField("device", device).Warn("device check failed")

		result = nso.ErrorResult(device, err)
	}

	duration := time.Since(start)

	log.WithFields(logrus.Fields{
		"device":   device,
		"status":   result.Status,
		"duration": duration,
	}).Debug("device checked")

	if c.metrics != nil {
		c.metrics.RecordCheck(&metrics.CheckMetric{
			Device:      device,
			Status:      result.Status,
			Message:     result.Message,
			Unreachable: unreachable,
			Duration:    duration,
			Timestamp:   time.Now(),
		})
	}

	return result
}

// Compile-time interface compliance check
var _ Checker = (*checker)(nil)
