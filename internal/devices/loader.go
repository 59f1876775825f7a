// Package devices reads device inventories from plain text list files.
package devices

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoPath is returned when Load is called without a path.
var ErrNoPath = errors.New("devices list path is empty")

const commentPrefix = "#"

// Loader reads device lists. One device identifier per line; surrounding whitespace is
// stripped, blank lines and # comments are skipped and repeated devices are kept once.
type Loader struct {
	log logrus.FieldLogger
}

// NewLoader creates a new device list loader.
func NewLoader(log logrus.FieldLogger) *Loader {
	return &Loader{
		log: log.WithField("component", "devices_loader"),
	}
}

// Load reads the device list at path.
func (l *Loader) Load(path string) ([]string, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator supplied flag
	if err != nil {
		return nil, fmt.Errorf("opening devices list: %w", err)
	}
	defer func() { _ = f.Close() }()

	devices, err := l.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading devices list %s: %w", path, err)
	}

	l.log.WithFields(logrus.Fields{
		"path":    path,
		"devices": len(devices),
	}).Info("loaded devices list")

	return devices, nil
}

// Parse reads a device list from r, preserving first-occurrence order.
func (l *Loader) Parse(r io.Reader) ([]string, error) {
	var (
		devices = make([]string, 0, 32)
		seen    = make(map[string]struct{})
		scanner = bufio.NewScanner(r)
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++

		device := strings.TrimSpace(scanner.Text())
		if device == "" || strings.HasPrefix(device, commentPrefix) {
			continue
		}

		if _, dup := seen[device]; dup {
			l.log.WithFields(logrus.Fields{
				"device": device,
				"line":   lineNo,
			}).Warn("duplicate device in list, ignoring")

			continue
		}

		seen[device] = struct{}{}
		devices = append(devices, device)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}
