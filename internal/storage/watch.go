package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"v60timer/internal/ui/preferences"
)

// WatchSettings monitors the settings file and calls onChange with the newly
// loaded Settings each time it is written. It runs until ctx is cancelled.
//
// The parent directory is watched so that editors saving through a rename
// are still noticed. A file that fails to parse is logged and skipped.
func WatchSettings(ctx context.Context, path string, logger *slog.Logger, onChange func(preferences.Settings)) error {
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("settings: watching for changes", "path", path)
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			settings, err := LoadSettings(path)
			if err != nil {
				logger.Error("settings: reload failed, keeping previous settings", "path", path, "err", err)
				continue
			}

			logger.Info("settings: reloaded", "path", path)
			onChange(settings)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("settings: watcher error", "err", err)
		}
	}
}
