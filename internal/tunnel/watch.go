package tunnel

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange once immediately and again after every settled write to cfgPath.
// The parent directory is watched so editors that replace the file are seen too.
// Errors from onChange are reported through report and do not stop the watch.
func Watch(ctx context.Context, cfgPath string, onChange func(context.Context) error, report func(error)) error {
	path, err := expandPath(cfgPath)
	if err != nil {
		return err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	fire := func() {
		if err := onChange(ctx); err != nil && report != nil {
			report(err)
		}
	}
	fire()

	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			DebugLog("Config event: %s", ev)
			settle.Reset(watchSettleMillis * time.Millisecond)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if report != nil {
				report(err)
			}
		case <-settle.C:
			fire()
		}
	}
}

// RunWatch re-renders cfgPath on every change until ctx is done. load reads the config
// on each change; nil means Load.
func RunWatch(ctx context.Context, cfgPath string, load func(string) (*Config, error), report func(error)) error {
	if load == nil {
		load = Load
	}
	err := Watch(ctx, cfgPath, func(ctx context.Context) error {
		cfg, err := load(cfgPath)
		if err != nil {
			return err
		}
		_, err = Render(ctx, cfg)
		return err
	}, report)
	if err == context.Canceled {
		return nil
	}
	return err
}
