package versioncheck

import (
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/ethpandaops/nso-version-check/internal/suite"
)

// Tests returns the test functions of the version suite.
func Tests() []*suite.Func {
	return []*suite.Func{
		{
			Name:   "TestRouterVersion",
			Params: []string{ParamName},
			Body:   RouterVersion,
		},
	}
}

// RouterVersion passes when the device runs the target version.
func RouterVersion(t *suite.T, args suite.Args) {
	check, ok := args[ParamName].(*nso.CheckResult)
	if !ok {
		t.Fatalf("%s is not a check result: %T", ParamName, args[ParamName])
	}

	t.Logf("%s: %s", check.Device, check.Message)

	if check.Status != nso.StatusOK {
		t.Fatalf("assert %q == %q", check.Status, nso.StatusOK)
	}
}
