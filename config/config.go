// Package config loads settings for the fxrun command from TOML or YAML
// files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Backends accepted in Config.Backend.
const (
	BackendSoftware = "software"
	BackendNull     = "null"
)

var (
	// ErrUnknownFormat is returned by Load for unsupported file extensions.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid is wrapped by every Validate error.
	ErrInvalid = errors.New("config: invalid")
)

// Config describes one fxrun invocation.
type Config struct {
	Width    int               `toml:"width" yaml:"width"`
	Height   int               `toml:"height" yaml:"height"`
	Frames   int               `toml:"frames" yaml:"frames"`
	Backend  string            `toml:"backend" yaml:"backend"`
	LogLevel string            `toml:"log_level" yaml:"log_level"`
	Graph    string            `toml:"graph" yaml:"graph"`
	Assets   map[string]string `toml:"assets" yaml:"assets"`
	Output   string            `toml:"output" yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Width:    512,
		Height:   512,
		Frames:   1,
		Backend:  BackendSoftware,
		LogLevel: "warn",
		Output:   "out.png",
	}
}

// Load reads path on top of Default. The format is chosen by extension:
// .toml, .yaml or .yml. Relative graph and asset paths are resolved against
// the directory of path.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Graph = rel(c.Graph)
	for name, p := range c.Assets {
		c.Assets[name] = rel(p)
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.Backend != BackendSoftware && c.Backend != BackendNull:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	case c.Graph == "":
		return fmt.Errorf("%w: no graph file", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
