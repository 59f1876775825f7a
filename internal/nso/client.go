package nso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultCheckAction is the RESTCONF path of the check_version action.
	DefaultCheckAction = "check_device/check_version"

	contentType     = "application/yang-data+json"
	restconfRoot    = "/restconf/data/"
	maxErrorBodyLen = 512
)

// Client issues RESTCONF requests against NSO. Implementations must be safe for concurrent use.
type Client interface {
	// Action invokes a RESTCONF action, posting payload as JSON and decoding the reply into out.
	Action(ctx context.Context, action string, payload, out interface{}) error
	// CheckVersion runs the check_version action for a single device.
	CheckVersion(ctx context.Context, device, targetVersion string) (*CheckResult, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Address     string // scheme and host, e.g. http://127.0.0.1
	Port        int
	Username    string
	Password    string
	CheckAction string
	HTTPClient  *http.Client
}

type client struct {
	baseURL     string
	username    string
	password    string
	checkAction string
	httpClient  *http.Client
	log         logrus.FieldLogger
}

// NewClient creates a new NSO RESTCONF client.
func NewClient(log logrus.FieldLogger, cfg ClientConfig) Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	checkAction := cfg.CheckAction
	if checkAction == "" {
		checkAction = DefaultCheckAction
	}

	baseURL := strings.TrimRight(cfg.Address, "/")
	if cfg.Port > 0 {
		baseURL = fmt.Sprintf("%s:%d", baseURL, cfg.Port)
	}

	return &client{
		baseURL:     baseURL,
		username:    cfg.Username,
		password:    cfg.Password,
		checkAction: checkAction,
		httpClient:  httpClient,
		log:         log.WithField("component", "nso_client"),
	}
}

func (c *client) Action(ctx context.Context, action string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	url := c.baseURL + restconfRoot + strings.TrimLeft(action, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"action":   action,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("nso action completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

		return &HTTPStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding body: %w", ErrMalformedResponse, err)
	}

	return nil
}

func (c *client) CheckVersion(ctx context.Context, device, targetVersion string) (*CheckResult, error) {
	req := checkVersionRequest{
		Input: checkVersionInput{
			Device:        device,
			TargetVersion: targetVersion,
		},
	}

	var resp checkVersionResponse
	if err := c.Action(ctx, c.checkAction, req, &resp); err != nil {
		return nil, err
	}

	if resp.Output == nil {
		return nil, fmt.Errorf("%w: missing check_device:output", ErrMalformedResponse)
	}

	if resp.Output.Device == "" {
		return nil, fmt.Errorf("%w: missing device", ErrMalformedResponse)
	}

	if !resp.Output.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid check_status %q", ErrMalformedResponse, resp.Output.Status)
	}

	return resp.Output, nil
}

// Compile-time interface compliance check
var _ Client = (*client)(nil)
