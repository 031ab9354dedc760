package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the CLI TOML configuration file.
type FileConfig struct {
	Target TargetConfig `toml:"target"`
	Output OutputConfig `toml:"output"`
}

// TargetConfig maps the default target impedance.
type TargetConfig struct {
	Resistance   *float64 `toml:"resistance"`
	Reactance    *float64 `toml:"reactance"`
	FrequencyGHz *float64 `toml:"frequency-ghz"`
}

// OutputConfig maps table and plot output settings.
type OutputConfig struct {
	Top    *int `toml:"top"`
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// DefaultFileTemplate is written by "matchcalc config" when no file exists.
const DefaultFileTemplate = `# matchcalc configuration
# Values here apply when the matching flag is not given.

[target]
# resistance = 40      # Ohm, 10..100
# reactance = 13       # Ohm, -50..50
# frequency-ghz = 2.4  # GHz, 0.1..6

[output]
# top = 10             # rows printed by the table command
# width = 1024         # plot width in pixels
# height = 640         # plot height in pixels
`
