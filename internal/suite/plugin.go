package suite

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// TerminalReporterName is the plugin name of the active Reporter.
const TerminalReporterName = "terminalreporter"

var (
	// ErrPluginRegistered is returned when a plugin name is already taken.
	ErrPluginRegistered = errors.New("plugin already registered")
	// ErrPluginNotFound is returned when unregistering an unknown plugin.
	ErrPluginNotFound = errors.New("plugin not found")
)

// OptionAdder plugins register command line options.
type OptionAdder interface {
	AddOptions(p *Parser)
}

// Configurer plugins run once at the start of a run, in registration order.
type Configurer interface {
	Configure(cfg *Config) error
}

// TestGenerator plugins bind parameters for each collected Func.
type TestGenerator interface {
	GenerateTests(ctx context.Context, m *Metafunc) error
}

// ReportMaker plugins observe and annotate every Report before it reaches the Reporter.
type ReportMaker interface {
	MakeReport(item *Item, rep *Report)
}

// Reporter renders outcomes. Exactly one is active per run.
type Reporter interface {
	ReportOutcome(rep *Report)
	Summary()
}

// PluginManager keeps named plugins in registration order.
type PluginManager struct {
	mu      sync.RWMutex
	names   []string
	plugins map[string]interface{}
}

// NewPluginManager creates an empty plugin manager.
func NewPluginManager() *PluginManager {
	return &PluginManager{
		plugins: make(map[string]interface{}),
	}
}

// Register adds plugin under name.
func (m *PluginManager) Register(name string, plugin interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[name]; ok {
		return fmt.Errorf("%w: %s", ErrPluginRegistered, name)
	}

	m.names = append(m.names, name)
	m.plugins[name] = plugin

	return nil
}

// Unregister removes the plugin registered under name.
func (m *PluginManager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[name]; !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}

	delete(m.plugins, name)

	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)

			break
		}
	}

	return nil
}

// Get returns the plugin registered under name, or nil.
func (m *PluginManager) Get(name string) interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.plugins[name]
}

// Plugins returns a snapshot of all plugins in registration order.
func (m *PluginManager) Plugins() []interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]interface{}, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.plugins[name])
	}

	return out
}
