package versioncheck

import (
	"context"
	"errors"
	"io"

	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/ethpandaops/nso-version-check/internal/output"
	"github.com/ethpandaops/nso-version-check/internal/suite"
	"github.com/sirupsen/logrus"
)

const (
	// PluginName is the name the plugin registers under.
	PluginName = "versioncheck"
	// ParamName is the parameter carrying a *nso.CheckResult.
	ParamName = "device_check"

	// OptionTargetVersion is the option holding the version every device must run.
	OptionTargetVersion = "target-version"
	// OptionDevicesListPath is the option holding the path of the devices list.
	OptionDevicesListPath = "devices-list-path"
)

// AddOptions registers the version check options on p.
func AddOptions(p *suite.Parser) {
	p.AddOption(OptionTargetVersion, "target version of the devices")
	p.AddOption(OptionDevicesListPath, "path to the devices list txt")
}

// Plugin wires the version checks into a suite.Session.
type Plugin struct {
	log       logrus.FieldLogger
	generator *Generator
	metrics   metrics.Collector
	out       io.Writer
	width     int
	formatter output.Formatter
}

// NewPlugin creates the plugin. collector may be nil to skip recording case outcomes and
// formatter may be nil to skip the result tables.
func NewPlugin(
	log logrus.FieldLogger,
	generator *Generator,
	collector metrics.Collector,
	out io.Writer,
	width int,
	formatter output.Formatter,
) *Plugin {
	return &Plugin{
		log:       log.WithField("component", "versioncheck_plugin"),
		generator: generator,
		metrics:   collector,
		out:       out,
		width:     width,
		formatter: formatter,
	}
}

// AddOptions implements suite.OptionAdder.
func (p *Plugin) AddOptions(parser *suite.Parser) {
	AddOptions(parser)
}

// Configure replaces the default terminal reporter with a DeviceReporter.
func (p *Plugin) Configure(cfg *suite.Config) error {
	if err := cfg.Plugins.Unregister(suite.TerminalReporterName); err != nil && !errors.Is(err, suite.ErrPluginNotFound) {
		return err
	}

	p.log.Debug("replacing terminal reporter")

	return cfg.Plugins.Register(suite.TerminalReporterName, NewDeviceReporter(p.out, p.width, p.formatter))
}

// GenerateTests binds one check result to each generated case of functions that request
// ParamName. Case ids are the device names.
func (p *Plugin) GenerateTests(ctx context.Context, m *suite.Metafunc) error {
	if !m.Requests(ParamName) {
		return nil
	}

	results, err := p.generator.Generate(
		ctx,
		m.Config.GetOption(OptionTargetVersion),
		m.Config.GetOption(OptionDevicesListPath),
	)
	if err != nil {
		return err
	}

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = result.Device
	}

	return m.Parametrize(ParamName, suite.Values(results), ids)
}

// MakeReport attaches the checked device to the report of every executed case and records
// the case outcome.
func (p *Plugin) MakeReport(item *suite.Item, rep *suite.Report) {
	if rep.When != suite.PhaseCall {
		return
	}

	var device string

	if check, ok := item.Args[ParamName].(*nso.CheckResult); ok && check != nil {
		device = check.Device
		rep.Extra = append(rep.Extra, device)
	}

	if p.metrics != nil {
		p.metrics.RecordOutcome(&metrics.CaseMetric{
			NodeID:   rep.NodeID,
			Device:   device,
			Passed:   rep.Passed(),
			Duration: rep.Duration,
		})
	}
}

// Compile-time interface compliance checks
var (
	_ suite.OptionAdder   = (*Plugin)(nil)
	_ suite.Configurer    = (*Plugin)(nil)
	_ suite.TestGenerator = (*Plugin)(nil)
	_ suite.ReportMaker   = (*Plugin)(nil)
)
