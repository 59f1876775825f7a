package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoReporter is returned when no Reporter is registered under TerminalReporterName.
var ErrNoReporter = errors.New("no terminal reporter registered")

// Result summarizes a run.
type Result struct {
	Reports  []*Report
	Passed   int
	Failed   int
	Duration time.Duration
}

// OK returns true if no item failed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// Session drives one run.
type Session struct {
	log    logrus.FieldLogger
	parser *Parser
	config *Config
}

// NewSession creates a session whose default TerminalReporter writes to out.
func NewSession(log logrus.FieldLogger, parser *Parser, out io.Writer, width int) *Session {
	if parser == nil {
		parser = NewParser(nil)
	}

	plugins := NewPluginManager()
	_ = plugins.Register(TerminalReporterName, NewTerminalReporter(out, width))

	return &Session{
		log:    log.WithField("component", "suite_session"),
		parser: parser,
		config: &Config{parser: parser, Plugins: plugins},
	}
}

// Config returns the run configuration.
func (s *Session) Config() *Config {
	return s.config
}

// Parser returns the option parser plugins register on.
func (s *Session) Parser() *Parser {
	return s.parser
}

// Register adds a plugin and lets it register its options.
func (s *Session) Register(name string, plugin interface{}) error {
	if err := s.config.Plugins.Register(name, plugin); err != nil {
		return err
	}

	if adder, ok := plugin.(OptionAdder); ok {
		adder.AddOptions(s.parser)
	}

	return nil
}

// Run configures the plugins, collects items from funcs, executes them in order and reports.
// An error means the run could not complete; failed items are reported through Result.
func (s *Session) Run(ctx context.Context, funcs []*Func) (*Result, error) {
	start := time.Now()

	for _, p := range s.config.Plugins.Plugins() {
		if c, ok := p.(Configurer); ok {
			if err := c.Configure(s.config); err != nil {
				return nil, fmt.Errorf("configuring plugins: %w", err)
			}
		}
	}

	reporter, ok := s.config.Plugins.Get(TerminalReporterName).(Reporter)
	if !ok {
		return nil, ErrNoReporter
	}

	items, err := s.collect(ctx, funcs)
	if err != nil {
		return nil, err
	}

	s.log.WithField("items", len(items)).Info("collected items")

	result := &Result{Reports: make([]*Report, 0, len(items))}

	for _, item := range items {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("run interrupted: %w", ctxErr)
		}

		t, duration := runItem(item)
		rep := newReport(item, t, duration)

		for _, p := range s.config.Plugins.Plugins() {
			if maker, ok := p.(ReportMaker); ok {
				maker.MakeReport(item, rep)
			}
		}

		reporter.ReportOutcome(rep)

		result.Reports = append(result.Reports, rep)
		if rep.Failed() {
			result.Failed++
		} else {
			result.Passed++
		}
	}

	reporter.Summary()

	result.Duration = time.Since(start)

	s.log.WithFields(logrus.Fields{
		"passed":   result.Passed,
		"failed":   result.Failed,
		"duration": result.Duration,
	}).Info("run complete")

	return result, nil
}

// collect offers every Func to the generators and expands the bound parameters.
func (s *Session) collect(ctx context.Context, funcs []*Func) ([]*Item, error) {
	items := make([]*Item, 0, len(funcs))

	for _, fn := range funcs {
		m := newMetafunc(fn, s.config)

		for _, p := range s.config.Plugins.Plugins() {
			if gen, ok := p.(TestGenerator); ok {
				if err := gen.GenerateTests(ctx, m); err != nil {
					return nil, fmt.Errorf("generating tests for %s: %w", fn.Name, err)
				}
			}
		}

		fnItems, err := m.items()
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", fn.Name, err)
		}

		items = append(items, fnItems...)
	}

	return items, nil
}
