package suite

// Config is the run configuration handed to plugins.
type Config struct {
	parser  *Parser
	Plugins *PluginManager
}

// GetOption returns the value of a registered option, or "" when it is unset.
func (c *Config) GetOption(name string) string {
	v, _ := c.parser.Value(name)

	return v
}
