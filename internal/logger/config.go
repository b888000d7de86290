package logger

// Config controls logger construction.
type Config struct {
	Level       string   `env:"LOG_LEVEL"   yaml:"level"`
	Development bool     `env:"LOG_DEV"     yaml:"development"`
	OutputPaths []string `env:"LOG_OUTPUTS" yaml:"output_paths"`
}

const defaultLevel = "info"

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = defaultLevel
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
