package tunnel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LevelCfg describes the shape of every generated level.
// Radii are percentages of the scale factor.
type LevelCfg struct {
	Subsets     int         `json:"subsets" yaml:"subsets" toml:"subsets"`
	Points      int         `json:"points" yaml:"points" toml:"points"`
	Scale       float32     `json:"scale" yaml:"scale" toml:"scale"`
	Tunnel      bool        `json:"tunnel,omitempty" yaml:"tunnel,omitempty" toml:"tunnel,omitempty"`
	InnerRadius float32     `json:"innerRadius,omitempty" yaml:"innerRadius,omitempty" toml:"innerRadius,omitempty"`
	OuterRadius float32     `json:"outerRadius,omitempty" yaml:"outerRadius,omitempty" toml:"outerRadius,omitempty"`
	A           orbit.Range `json:"a" yaml:"a" toml:"a"`
	B           orbit.Range `json:"b" yaml:"b" toml:"b"`
	C           orbit.Range `json:"c" yaml:"c" toml:"c"`
	D           orbit.Range `json:"d" yaml:"d" toml:"d"`
	E           orbit.Range `json:"e" yaml:"e" toml:"e"`
}

type Config struct {
	Levels      int      `json:"levels" yaml:"levels" toml:"levels"`
	Seed        int64    `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed,omitempty"` // 0 = clock seeded
	Width       int      `json:"width" yaml:"width" toml:"width"`
	Height      int      `json:"height" yaml:"height" toml:"height"`
	Supersample int      `json:"supersample,omitempty" yaml:"supersample,omitempty" toml:"supersample,omitempty"`
	Zoom        float32  `json:"zoom,omitempty" yaml:"zoom,omitempty" toml:"zoom,omitempty"`
	Gamma       float64  `json:"gamma,omitempty" yaml:"gamma,omitempty" toml:"gamma,omitempty"`
	GIFOut      string   `json:"gifOut" yaml:"gifOut" toml:"gifOut"`
	GIFDelay    int      `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty" toml:"gifDelay,omitempty"`
	PNGPrefix   string   `json:"pngPrefix,omitempty" yaml:"pngPrefix,omitempty" toml:"pngPrefix,omitempty"`
	RawOut      string   `json:"rawOut,omitempty" yaml:"rawOut,omitempty" toml:"rawOut,omitempty"`
	FPS         int      `json:"fps,omitempty" yaml:"fps,omitempty" toml:"fps,omitempty"`
	LevelTicks  int      `json:"levelTicks,omitempty" yaml:"levelTicks,omitempty" toml:"levelTicks,omitempty"`
	Level       LevelCfg `json:"level" yaml:"level" toml:"level"`
}

// Params converts the level section into kernel parameters.
func (c *Config) Params() orbit.Params {
	l := c.Level
	return orbit.Params{
		SubsetCount:        l.Subsets,
		PointsPerSubset:    l.Points,
		Scale:              l.Scale,
		Tunnel:             l.Tunnel,
		InnerRadiusPercent: l.InnerRadius,
		OuterRadiusPercent: l.OuterRadius,
		A:                  l.A,
		B:                  l.B,
		C:                  l.C,
		D:                  l.D,
		E:                  l.E,
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	case ".json", "":
		return json.Unmarshal(data, cfg)
	}
	return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
}

func loadConfig(path string) (*Config, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := decodeConfig(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.applyDefaults()
	for _, p := range []*string{&cfg.GIFOut, &cfg.PNGPrefix, &cfg.RawOut} {
		if *p, err = expandPath(*p); err != nil {
			return nil, err
		}
	}
	DebugLog("Loaded config from %s: levels=%d, subsets=%d, points=%d, size=(%d, %d), gamma=%f", path, cfg.Levels, cfg.Level.Subsets, cfg.Level.Points, cfg.Width, cfg.Height, cfg.Gamma)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Levels < 0 || c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("levels and image size must not be negative")
	}
	if c.Level.Subsets < 0 || c.Level.Points < 0 {
		return fmt.Errorf("subset and point counts must not be negative, got %d x %d", c.Level.Subsets, c.Level.Points)
	}
	if c.Level.InnerRadius < 0 || c.Level.InnerRadius > 100 || c.Level.OuterRadius < 0 || c.Level.OuterRadius > 100 {
		return fmt.Errorf("radii are percentages in [0, 100]")
	}
	return nil
}

// Zero fields get defaults. A coefficient range is defaulted only when both bounds are zero.
func (c *Config) applyDefaults() {
	if c.Levels <= 0 {
		c.Levels = Levels
	}
	if c.Width <= 0 {
		c.Width = Width
	}
	if c.Height <= 0 {
		c.Height = Height
	}
	if c.Supersample <= 0 {
		c.Supersample = Supersample
	}
	if c.Zoom <= 0 {
		c.Zoom = Zoom
	}
	if c.Gamma <= 0 {
		c.Gamma = Gamma
	}
	if c.GIFOut == "" {
		c.GIFOut = GIFOut
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = GIFDelay
	}
	if c.PNGPrefix == "" {
		c.PNGPrefix = strings.TrimSuffix(c.GIFOut, filepath.Ext(c.GIFOut))
	}
	if c.FPS <= 0 {
		c.FPS = FPS
	}
	if c.LevelTicks <= 0 {
		c.LevelTicks = LevelTicks
	}
	l := &c.Level
	if l.Subsets == 0 {
		l.Subsets = Subsets
	}
	if l.Points == 0 {
		l.Points = Points
	}
	if l.Scale <= 0 {
		l.Scale = Scale
	}
	if l.OuterRadius <= 0 {
		l.OuterRadius = OuterRadius
	}
	for _, r := range []struct {
		dst *orbit.Range
		def orbit.Range
	}{{&l.A, RangeA}, {&l.B, RangeB}, {&l.C, RangeC}, {&l.D, RangeD}, {&l.E, RangeE}} {
		if *r.dst == (orbit.Range{}) {
			*r.dst = r.def
		}
	}
}
