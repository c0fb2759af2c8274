package tunnel

import (
	"context"
	"fmt"
	"image"
	"time"
)

// Load reads cfgPath, or returns the defaults when cfgPath is empty.
func Load(cfgPath string) (*Config, error) {
	if cfgPath == "" {
		return DefaultConfig(), nil
	}
	return loadConfig(cfgPath)
}

func Run(ctx context.Context, cfgPath string) error {
	cfg, err := Load(cfgPath)
	if err != nil {
		return err
	}
	_, err = Render(ctx, cfg)
	return err
}

// Render builds cfg.Levels levels and writes the configured outputs, returning the paths written.
func Render(ctx context.Context, cfg *Config) ([]string, error) {
	p := cfg.Params()
	start := time.Now()
	resetLevelLog()
	levels, err := BuildLevels(ctx, p, cfg.Levels, cfg.Seed)
	if err != nil {
		return nil, err
	}
	DebugLog("Levels: %d x %d x %d points, time: %s", cfg.Levels, p.SubsetCount, p.PointsPerSubset, time.Since(start))

	if Debug {
		for _, line := range levelStats() {
			DebugLog("%s", line)
		}
	}

	var written []string
	if RAW {
		path := cfg.RawOut
		if path == "" {
			path = cfg.PNGPrefix + ".raw"
		}
		if err := SaveRawLevels(path, levels); err != nil {
			return written, fmt.Errorf("save raw: %w", err)
		}
		written = append(written, path)
		DebugLog("Saved raw levels: %s", path)
	}

	frames := make([]*image.NRGBA64, len(levels))
	for i, l := range levels {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		frames[i] = RenderLevel(cfg, l)
	}

	if PNG {
		names, err := SavePNGSequence16(frames, cfg.PNGPrefix)
		written = append(written, names...)
		if err != nil {
			return written, fmt.Errorf("save png: %w", err)
		}
		DebugLog("Saved PNG sequence with prefix: %s", cfg.PNGPrefix)
		return written, nil
	}
	if err := SaveAnimatedGIF(frames, cfg.GIFOut, cfg.GIFDelay); err != nil {
		return written, fmt.Errorf("save gif: %w", err)
	}
	DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	return append(written, cfg.GIFOut), nil
}

// Dump builds the levels and writes only the raw coordinate file.
func Dump(ctx context.Context, cfg *Config, path string) error {
	levels, err := BuildLevels(ctx, cfg.Params(), cfg.Levels, cfg.Seed)
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.RawOut
	}
	if path == "" {
		path = cfg.PNGPrefix + ".raw"
	}
	path, err = expandPath(path)
	if err != nil {
		return err
	}
	return SaveRawLevels(path, levels)
}
