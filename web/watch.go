package web

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/debounce"
)

// ReloadDelay is how long the watcher waits for edits to settle.
const ReloadDelay = 300 * time.Millisecond

// LoadDir loads templates from a directory on disk instead of the embedded
// copy. Used with Watch during template development.
func LoadDir(dir string) (*Templates, error) {
	return Load(os.DirFS(dir))
}

// Watch re-parses t whenever a file under dir changes, until ctx is done.
// dir must be the directory t was loaded from.
func Watch(ctx context.Context, dir string, t *Templates) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := log.With().Str("component", "template-watcher").Str("dir", dir).Logger()
	reload := debounce.New(ReloadDelay)

	go func() {
		defer watcher.Close()
		defer reload.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
						}
					}
				}

				logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("template change detected")
				reload.Trigger(func() {
					if err := t.Reload(); err != nil {
						logger.Error().Err(err).Msg("template reload failed, keeping previous templates")
						return
					}
					logger.Info().Msg("templates reloaded")
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}()

	return nil
}
