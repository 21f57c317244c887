package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "keypoly.toml"

type Config struct {
	DocumentPath string `toml:"document"`
	InputDir     string `toml:"input_dir"`
	OutputPath   string `toml:"output"`
	OutputDir    string `toml:"output_dir"`
	Workers      int    `toml:"workers"`
	Easing       string `toml:"easing"`
	ShowStats    bool   `toml:"stats"`
	BuildVersion string `toml:"-"`
}

// EditParams addresses one write or read on a region timeline.
type EditParams struct {
	RegionID string
	Frame    int
	Index    int
	X, Y     float64
	Points   string
	Rotation string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		InputDir:  "input",
		OutputDir: "output",
		Workers:   runtime.NumCPU(),
		Easing:    "linear",
	}
}

// Load overlays the TOML file at path onto the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}
