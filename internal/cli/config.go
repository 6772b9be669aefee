package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-level defaults loaded from the TOML config file at
// $XDG_CONFIG_HOME/promptink/config.toml. Every field is optional; zero
// values fall back to the built-in defaults, and command-line flags
// override anything loaded here.
type Config struct {
	// Output is the default directory for rendered PNG files.
	Output string `toml:"output"`

	// Scale is the default output scale factor (1 = 640x640).
	Scale int `toml:"scale"`

	// Listen is the default HTTP listen address for the serve command.
	Listen string `toml:"listen"`

	// Redis is the default Redis address for the serve palette cache.
	// Empty means in-process memory cache.
	Redis string `toml:"redis"`

	// Samples are extra prompts offered by the studio command.
	Samples []string `toml:"samples"`
}

// defaultConfig returns the built-in defaults used when no config file
// exists or a field is unset.
func defaultConfig() Config {
	return Config{
		Output: ".",
		Scale:  1,
		Listen: ":8080",
	}
}

// loadConfig reads the config file if present and merges it over the
// built-in defaults. A missing file is not an error; a malformed file is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return cfg, err
	}
	return mergeConfig(cfg, file), nil
}

// mergeConfig overlays set fields from file onto base.
func mergeConfig(base, file Config) Config {
	if file.Output != "" {
		base.Output = file.Output
	}
	if file.Scale > 0 {
		base.Scale = file.Scale
	}
	if file.Listen != "" {
		base.Listen = file.Listen
	}
	if file.Redis != "" {
		base.Redis = file.Redis
	}
	if len(file.Samples) > 0 {
		base.Samples = file.Samples
	}
	return base
}
