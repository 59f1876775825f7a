package config

import "time"

const (
	// EnvNSOAddress is the scheme and host of the NSO RESTCONF API.
	EnvNSOAddress = "NSO_ADDRESS"
	// EnvNSOPort is the NSO RESTCONF port.
	EnvNSOPort = "NSO_PORT"
	// EnvNSOUsername is the NSO user.
	EnvNSOUsername = "NSO_USERNAME"
	// EnvNSOPassword is the NSO password.
	EnvNSOPassword = "NSO_PASSWORD"
	// EnvNSOCheckAction is the RESTCONF path of the check_version action.
	EnvNSOCheckAction = "NSO_CHECK_ACTION"
	// EnvRequestTimeout bounds each NSO request, as a Go duration. "0" disables the bound.
	EnvRequestTimeout = "NSO_REQUEST_TIMEOUT"
	// EnvWorkers is the number of concurrent device checks.
	EnvWorkers = "CHECK_WORKERS"
	// EnvSortResults orders generated cases by device when true.
	EnvSortResults = "CHECK_SORT_RESULTS"

	// DefaultNSOAddress is the NSO address used when none is configured.
	DefaultNSOAddress = "http://127.0.0.1"
	// DefaultNSOPort is the NSO port used when none is configured.
	DefaultNSOPort = 8080
	// DefaultNSOUsername is the NSO user used when none is configured.
	DefaultNSOUsername = "admin"
	// DefaultNSOPassword is the NSO password used when none is configured.
	DefaultNSOPassword = "admin"
	// DefaultWorkers is the number of concurrent device checks.
	DefaultWorkers = 5
	// DefaultRequestTimeout bounds each NSO request.
	DefaultRequestTimeout = 30 * time.Second
)
