// Package nso provides a RESTCONF client for the Network Services Orchestrator
// check_device service and the types exchanged with it.
package nso

import (
	"errors"
	"fmt"
)

// CheckStatus is the outcome reported for a single device check.
type CheckStatus string

const (
	// StatusOK means the device runs the target version.
	StatusOK CheckStatus = "OK"
	// StatusNOK means the device does not run the target version, or could not be checked.
	StatusNOK CheckStatus = "NOK"
	// StatusError means the check itself failed.
	StatusError CheckStatus = "ERROR"
)

var (
	// ErrConnection is returned when NSO cannot be reached.
	ErrConnection = errors.New("cannot connect to nso")
	// ErrMalformedResponse is returned when NSO answers with a payload that does not match the contract.
	ErrMalformedResponse = errors.New("malformed nso response")
)

// Valid reports whether s is one of the statuses NSO is allowed to return.
func (s CheckStatus) Valid() bool {
	switch s {
	case StatusOK, StatusNOK, StatusError:
		return true
	default:
		return false
	}
}

// CheckResult is the check_device:output payload for one device.
type CheckResult struct {
	Device  string      `json:"device"`
	Status  CheckStatus `json:"check_status"`
	Message string      `json:"check_message"`
}

// OK returns true if the device runs the target version.
func (r *CheckResult) OK() bool {
	return r != nil && r.Status == StatusOK
}

func (r *CheckResult) String() string {
	return fmt.Sprintf("%s: %s (%s)", r.Device, r.Status, r.Message)
}

// UnreachableResult is the result synthesized when NSO could not be contacted for device.
func UnreachableResult(device string) *CheckResult {
	return &CheckResult{
		Device:  device,
		Status:  StatusNOK,
		Message: fmt.Sprintf("Cannot connect to NSO to check %s", device),
	}
}

// ErrorResult is the result synthesized when the check for device failed for any reason
// other than connectivity.
func ErrorResult(device string, err error) *CheckResult {
	return &CheckResult{
		Device:  device,
		Status:  StatusError,
		Message: fmt.Sprintf("Failed to check %s: %v", device, err),
	}
}

// HTTPStatusError is returned when NSO answers with a non-2xx status code.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}

	return fmt.Sprintf("unexpected status code: %d: %s", e.Code, e.Body)
}

type checkVersionInput struct {
	Device        string `json:"device"`
	TargetVersion string `json:"target_version"`
}

type checkVersionRequest struct {
	Input checkVersionInput `json:"input"`
}

type checkVersionResponse struct {
	Output *CheckResult `json:"check_device:output"`
}
