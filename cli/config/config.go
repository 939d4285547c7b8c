package config

import "fmt"

// Config represents a midiwire.yaml configuration file.
// All values are optional and act as defaults for midiwire commands.
// CLI flags always override config values.
type Config struct {
	Format  string        `yaml:"format"`
	NoColor bool          `yaml:"no_color"`
	Verbose bool          `yaml:"verbose"`
	Convert ConvertConfig `yaml:"convert"`
}

// ConvertConfig holds convert command defaults from the config file.
type ConvertConfig struct {
	Output string `yaml:"output"`
	Export string `yaml:"export"`
}

// Validate checks enumerated fields. Empty values are valid and mean
// "use the command default".
func (c *Config) Validate() error {
	switch c.Format {
	case "", "json", "table", "yaml":
	default:
		return fmt.Errorf("invalid format %q (must be json, table, or yaml)", c.Format)
	}

	switch c.Convert.Export {
	case "", "json", "msgpack":
	default:
		return fmt.Errorf("invalid convert.export %q (must be json or msgpack)", c.Convert.Export)
	}

	return nil
}
