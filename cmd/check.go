package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/checker"
	"github.com/ethpandaops/nso-version-check/internal/config"
	"github.com/ethpandaops/nso-version-check/internal/devices"
	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/ethpandaops/nso-version-check/internal/output"
	"github.com/ethpandaops/nso-version-check/internal/suite"
	"github.com/ethpandaops/nso-version-check/internal/versioncheck"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultTerminalWidth = 80

// ErrChecksFailed is returned when at least one device check failed.
var ErrChecksFailed = errors.New("device checks failed")

var (
	// Check command flags
	checkConfigPath     string
	checkWorkers        int
	checkRequestTimeout time.Duration
	checkSortResults    bool
	checkVerbose        bool

	// checkParser holds --target-version and --devices-list-path
	checkParser *suite.Parser
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check device firmware versions through NSO",
	Long: `Check that every device in a devices list runs the target firmware version.

The devices list is a text file with one device name per line. Blank lines and lines
starting with # are ignored. Each device becomes one test case: it passes when NSO
reports OK and fails otherwise. Devices NSO cannot be reached for fail with NOK.

Without --target-version and --devices-list-path no cases are generated.

Example:
  nso-version-check check --target-version 17.3.4a --devices-list-path devices.txt
  nso-version-check check --target-version 17.3.4a --devices-list-path devices.txt --workers 10`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()

	checkParser = suite.NewParser(flags)
	versioncheck.AddOptions(checkParser)

	flags.StringVar(&checkConfigPath, "config", "", "Path to a YAML config file")
	flags.IntVar(&checkWorkers, "workers", config.DefaultWorkers, "Number of devices checked in parallel (overrides "+config.EnvWorkers+")")
	flags.DurationVar(&checkRequestTimeout, "request-timeout", config.DefaultRequestTimeout, "Timeout of each NSO request, 0 disables it (overrides "+config.EnvRequestTimeout+")")
	flags.BoolVar(&checkSortResults, "sort-results", false, "Order test cases by device name instead of completion order")
	flags.BoolVarP(&checkVerbose, "verbose", "v", false, "Verbose output")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(checkVerbose)

	cfg, err := config.Load(checkConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Check.Workers = checkWorkers
	}

	if flags.Changed("request-timeout") {
		cfg.Check.RequestTimeout = checkRequestTimeout
	}

	if flags.Changed("sort-results") {
		cfg.Check.SortResults = checkSortResults
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	result, err := runVersionCheck(ctx, log, cfg, checkParser, os.Stdout)
	if err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, result.Failed, len(result.Reports))
	}

	return nil
}

// runVersionCheck runs one version check session. parser must carry the version check options.
func runVersionCheck(
	ctx context.Context,
	log logrus.FieldLogger,
	cfg *config.Config,
	parser *suite.Parser,
	out io.Writer,
) (*suite.Result, error) {
	collector := metrics.NewCollector(log)
	if err := collector.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting metrics collector: %w", err)
	}
	defer func() {
		if err := collector.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop metrics collector")
		}
	}()

	chk := checker.NewChecker(log, nso.NewClient(log, cfg.ClientConfig()), collector, cfg.CheckerConfig())
	if err := chk.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting device checker: %w", err)
	}
	defer func() {
		if err := chk.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop device checker")
		}
	}()

	var (
		width     = terminalWidth()
		generator = versioncheck.NewGenerator(log, devices.NewLoader(log), chk)
		formatter = output.NewFormatter(log, out, collector)
		session   = suite.NewSession(log, parser, out, width)
	)

	if err := session.Register(versioncheck.PluginName, versioncheck.NewPlugin(log, generator, collector, out, width, formatter)); err != nil {
		return nil, fmt.Errorf("registering version check plugin: %w", err)
	}

	formatter.PrintPhase("Checking devices through NSO at " + cfg.NSO.Address)

	result, err := session.Run(ctx, versioncheck.Tests())
	if err != nil {
		formatter.PrintError("Version check aborted", err)
		return nil, fmt.Errorf("running version checks: %w", err)
	}

	switch {
	case len(result.Reports) == 0:
		formatter.PrintProgress("No devices checked", result.Duration)
	case result.OK():
		formatter.PrintSuccess(fmt.Sprintf("✓ %d devices passed", result.Passed))
	default:
		formatter.PrintError(fmt.Sprintf("✗ %d of %d devices failed", result.Failed, len(result.Reports)), nil)
	}

	return result, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}

	return width
}
