// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/checker"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidAddress is returned when the NSO address is not an http(s) URL.
	ErrInvalidAddress = errors.New("nso address must be an http or https url")
	// ErrInvalidPort is returned when the NSO port is out of range.
	ErrInvalidPort = errors.New("nso port must be between 1 and 65535")
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")
)

// Config holds the application configuration
type Config struct {
	NSO   NSOConfig   `yaml:"nso"`
	Check CheckConfig `yaml:"check"`
}

// NSOConfig describes how to reach NSO.
type NSOConfig struct {
	Address     string `yaml:"address"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	CheckAction string `yaml:"check_action"`
}

// CheckConfig tunes how device checks run.
type CheckConfig struct {
	Workers        int           `yaml:"workers"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SortResults    bool          `yaml:"sort_results"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		NSO: NSOConfig{
			Address:     DefaultNSOAddress,
			Port:        DefaultNSOPort,
			Username:    DefaultNSOUsername,
			Password:    DefaultNSOPassword,
			CheckAction: nso.DefaultCheckAction,
		},
		Check: CheckConfig{
			Workers:        DefaultWorkers,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path, the .env file
// and environment variables, later sources taking precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied config path
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.NSO.Address = getEnv(EnvNSOAddress, c.NSO.Address)
	c.NSO.Username = getEnv(EnvNSOUsername, c.NSO.Username)
	c.NSO.Password = getEnv(EnvNSOPassword, c.NSO.Password)
	c.NSO.CheckAction = getEnv(EnvNSOCheckAction, c.NSO.CheckAction)

	if v := os.Getenv(EnvNSOPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvNSOPort, err)
		}
		c.NSO.Port = port
	}

	if v := os.Getenv(EnvWorkers); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Check.Workers = workers
	}

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		c.Check.RequestTimeout = timeout
	}

	if v := os.Getenv(EnvSortResults); v != "" {
		sortResults, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSortResults, err)
		}
		c.Check.SortResults = sortResults
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.NSO.Address)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, c.NSO.Address)
	}

	if u.Port() != "" || strings.Trim(u.Path, "/") != "" || u.RawQuery != "" {
		return fmt.Errorf("%w: %q must be scheme and host only, set the port with %s", ErrInvalidAddress, c.NSO.Address, EnvNSOPort)
	}

	if c.NSO.Port < 1 || c.NSO.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.NSO.Port)
	}

	if c.Check.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Check.Workers)
	}

	return nil
}

// ClientConfig returns the NSO client settings.
func (c *Config) ClientConfig() nso.ClientConfig {
	return nso.ClientConfig{
		Address:     c.NSO.Address,
		Port:        c.NSO.Port,
		Username:    c.NSO.Username,
		Password:    c.NSO.Password,
		CheckAction: c.NSO.CheckAction,
	}
}

// CheckerConfig returns the device checker settings. A zero request timeout disables the bound.
func (c *Config) CheckerConfig() checker.Config {
	timeout := c.Check.RequestTimeout
	if timeout == 0 {
		timeout = -1
	}

	return checker.Config{
		Workers:     c.Check.Workers,
		Timeout:     timeout,
		SortResults: c.Check.SortResults,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	passwordDisplay := "(not set)"
	if c.NSO.Password != "" {
		passwordDisplay = "********"
	}

	timeoutDisplay := c.Check.RequestTimeout.String()
	if c.Check.RequestTimeout == 0 {
		timeoutDisplay = "(none)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
NSO Address:       %s
NSO Port:          %d
NSO Username:      %s
NSO Password:      %s
Check Action:      %s
Workers:           %d
Request Timeout:   %s
Sort Results:      %t`,
		c.NSO.Address,
		c.NSO.Port,
		c.NSO.Username,
		passwordDisplay,
		c.NSO.CheckAction,
		c.Check.Workers,
		timeoutDisplay,
		c.Check.SortResults,
	)
}
