// Package metrics provides device check metrics collection and aggregation.
package metrics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/sirupsen/logrus"
)

// CheckMetric captures the outcome of checking a single device
type CheckMetric struct {
	Device      string
	Status      nso.CheckStatus
	Message     string
	Unreachable bool // result was synthesized because NSO could not be reached
	Duration    time.Duration
	Timestamp   time.Time
}

// CaseMetric captures the outcome of one executed test case
type CaseMetric struct {
	NodeID   string
	Device   string
	Passed   bool
	Duration time.Duration
}

// SummaryMetric provides aggregate statistics across all checks
type SummaryMetric struct {
	TotalDuration time.Duration
	TotalChecks   int
	Passed        int
	Failed        int
	Errored       int
	Unreachable   int

	TotalCases  int
	CasesPassed int
}

// Collector interface for metrics collection
type Collector interface {
	Start(ctx context.Context) error
	Stop() error
	RecordCheck(metric *CheckMetric)
	RecordOutcome(metric *CaseMetric)
	GetCheckMetrics() []CheckMetric
	GetCaseMetrics() []CaseMetric
	GetSummary() SummaryMetric
}

type collector struct {
	log          logrus.FieldLogger
	mu           sync.RWMutex
	checkMetrics []CheckMetric
	caseMetrics  []CaseMetric
	startTime    time.Time
}

// NewCollector creates a new metrics collector
func NewCollector(log logrus.FieldLogger) Collector {
	return &collector{
		log:          log.WithField("component", "metrics_collector"),
		checkMetrics: make([]CheckMetric, 0, 64),
		startTime:    time.Now(),
	}
}

func (c *collector) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()

	c.log.Debug("metrics collector started")

	return nil
}

func (c *collector) Stop() error {
	c.log.Debug("metrics collector stopped")

	return nil
}

func (c *collector) RecordCheck(metric *CheckMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkMetrics = append(c.checkMetrics, *metric)
}

func (c *collector) RecordOutcome(metric *CaseMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caseMetrics = append(c.caseMetrics, *metric)
}

// GetCaseMetrics returns a copy of the recorded case outcomes in execution order.
func (c *collector) GetCaseMetrics() []CaseMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]CaseMetric, len(c.caseMetrics))
	copy(result, c.caseMetrics)

	return result
}

// GetCheckMetrics returns a copy of the recorded metrics sorted by device.
func (c *collector) GetCheckMetrics() []CheckMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]CheckMetric, len(c.checkMetrics))
	copy(result, c.checkMetrics)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Device < result[j].Device
	})

	return result
}

func (c *collector) GetSummary() SummaryMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := SummaryMetric{
		TotalDuration: time.Since(c.startTime),
		TotalChecks:   len(c.checkMetrics),
		TotalCases:    len(c.caseMetrics),
	}

	for _, m := range c.caseMetrics {
		if m.Passed {
			summary.CasesPassed++
		}
	}

	for _, m := range c.checkMetrics {
		switch m.Status {
		case nso.StatusOK:
			summary.Passed++
		case nso.StatusError:
			summary.Errored++
		default:
			summary.Failed++
		}

		if m.Unreachable {
			summary.Unreachable++
		}
	}

	return summary
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
