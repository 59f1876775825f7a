package suite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownParam is returned when parametrizing a name the function does not request.
	ErrUnknownParam = errors.New("function does not request parameter")
	// ErrAlreadyParametrized is returned when a parameter is bound twice.
	ErrAlreadyParametrized = errors.New("parameter already parametrized")
	// ErrUnboundParam is returned at collection when a requested parameter was never bound.
	ErrUnboundParam = errors.New("parameter not parametrized")
)

// Args maps parameter names to the values bound for one Item.
type Args map[string]interface{}

// Func is a test function. Params lists the parameters it requests.
type Func struct {
	Name   string
	Params []string
	Body   func(t *T, args Args)
}

// Item is one collected test case.
type Item struct {
	NodeID string
	Func   *Func
	Args   Args
}

type parametrization struct {
	values []interface{}
	ids    []string
}

// Metafunc is handed to TestGenerator plugins once per Func.
type Metafunc struct {
	Func   *Func
	Config *Config

	params map[string]*parametrization
}

func newMetafunc(fn *Func, cfg *Config) *Metafunc {
	return &Metafunc{
		Func:   fn,
		Config: cfg,
		params: make(map[string]*parametrization),
	}
}

// Requests reports whether the function requests parameter name.
func (m *Metafunc) Requests(name string) bool {
	for _, p := range m.Func.Params {
		if p == name {
			return true
		}
	}

	return false
}

// Parametrize binds values to parameter name, one Item per value. ids name each value in the
// Item's node id; when nil, ids default to the parameter name suffixed with the index.
// An empty values slice yields no Items.
func (m *Metafunc) Parametrize(name string, values []interface{}, ids []string) error {
	if !m.Requests(name) {
		return fmt.Errorf("%w: %s requests %v, not %s", ErrUnknownParam, m.Func.Name, m.Func.Params, name)
	}

	if _, ok := m.params[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyParametrized, name)
	}

	if ids == nil {
		ids = make([]string, len(values))
		for i := range values {
			ids[i] = fmt.Sprintf("%s%d", name, i)
		}
	}

	if len(ids) != len(values) {
		return fmt.Errorf("parametrizing %s: %d ids for %d values", name, len(ids), len(values)) //nolint:err113 // include counts
	}

	m.params[name] = &parametrization{values: values, ids: ids}

	return nil
}

// Values converts a typed slice for Parametrize.
func Values[V any](in []V) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}

	return out
}

type partialItem struct {
	ids  []string
	args Args
}

// items expands the bound parameters into the cartesian product of Items.
func (m *Metafunc) items() ([]*Item, error) {
	if len(m.Func.Params) == 0 {
		return []*Item{{NodeID: m.Func.Name, Func: m.Func, Args: Args{}}}, nil
	}

	partial := []partialItem{{args: Args{}}}

	for _, name := range m.Func.Params {
		p, ok := m.params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s requests %s", ErrUnboundParam, m.Func.Name, name)
		}

		next := make([]partialItem, 0, len(partial)*len(p.values))

		for _, base := range partial {
			for i, value := range p.values {
				args := make(Args, len(base.args)+1)
				for k, v := range base.args {
					args[k] = v
				}

				args[name] = value

				ids := make([]string, 0, len(base.ids)+1)
				ids = append(ids, base.ids...)
				ids = append(ids, p.ids[i])

				next = append(next, partialItem{ids: ids, args: args})
			}
		}

		partial = next
	}

	items := make([]*Item, 0, len(partial))
	for _, p := range partial {
		items = append(items, &Item{
			NodeID: fmt.Sprintf("%s[%s]", m.Func.Name, strings.Join(p.ids, "-")),
			Func:   m.Func,
			Args:   p.args,
		})
	}

	return items, nil
}
