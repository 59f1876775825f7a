// Package versioncheck turns NSO version checks into one test case per device and reports
// failures with the device they belong to.
package versioncheck

import (
	"context"
	"fmt"

	"github.com/ethpandaops/nso-version-check/internal/checker"
	"github.com/ethpandaops/nso-version-check/internal/devices"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/sirupsen/logrus"
)

// Generator resolves the check results a run is parametrized with.
type Generator struct {
	log     logrus.FieldLogger
	loader  *devices.Loader
	checker checker.Checker
}

// NewGenerator creates a new generator.
func NewGenerator(log logrus.FieldLogger, loader *devices.Loader, chk checker.Checker) *Generator {
	return &Generator{
		log:     log.WithField("component", "versioncheck_generator"),
		loader:  loader,
		checker: chk,
	}
}

// Generate checks every device listed in devicesListPath against targetVersion. When either
// input is empty nothing is checked and no results are returned.
func (g *Generator) Generate(ctx context.Context, targetVersion, devicesListPath string) ([]*nso.CheckResult, error) {
	if targetVersion == "" || devicesListPath == "" {
		g.log.WithFields(logrus.Fields{
			"target_version":    targetVersion,
			"devices_list_path": devicesListPath,
		}).Debug("target version or devices list not set, generating no checks")

		return nil, nil
	}

	deviceList, err := g.loader.Load(devicesListPath)
	if err != nil {
		return nil, err
	}

	results, err := g.checker.CheckDevices(ctx, targetVersion, deviceList)
	if err != nil {
		return nil, fmt.Errorf("checking devices: %w", err)
	}

	return results, nil
}
