package suite

import (
	"github.com/spf13/pflag"
)

// Parser holds the command line options plugins register.
type Parser struct {
	fs *pflag.FlagSet
}

// NewParser wraps fs. A nil fs gets a private flag set.
func NewParser(fs *pflag.FlagSet) *Parser {
	if fs == nil {
		fs = pflag.NewFlagSet("suite", pflag.ContinueOnError)
	}

	return &Parser{fs: fs}
}

// AddOption registers a string option. Registering the same name twice is a no-op.
func (p *Parser) AddOption(name, help string) {
	if p.fs.Lookup(name) != nil {
		return
	}

	p.fs.String(name, "", help)
}

// Parse parses args into the registered options.
func (p *Parser) Parse(args []string) error {
	return p.fs.Parse(args)
}

// Set assigns value to the option name.
func (p *Parser) Set(name, value string) error {
	return p.fs.Set(name, value)
}

// Value returns the option value and whether it is set to something non-empty.
func (p *Parser) Value(name string) (string, bool) {
	f := p.fs.Lookup(name)
	if f == nil {
		return "", false
	}

	v := f.Value.String()

	return v, v != ""
}
