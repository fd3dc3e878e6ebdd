package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits for a burst of writes to settle
var WatchDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever its content changes and calls fn
// with the result. It watches the parent directory so that editors replacing
// the file are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	loader := New()
	lastHash, _ := loader.Hash(absPath)

	timer := time.NewTimer(WatchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(WatchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch %s: %w", absPath, err))

		case <-timer.C:
			hash, err := loader.Hash(absPath)
			if err != nil {
				// the file is gone until the editor writes it back
				continue
			}
			if hash == lastHash {
				continue
			}
			lastHash = hash

			loader.Invalidate(absPath)
			fn(loader.Load(absPath))
		}
	}
}
