package profile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the document at path every time it is written, created or
// renamed into place, until ctx is cancelled. Each reload is an ordinary
// LoadFile: a half-written or broken document keeps the current profile.
// The parent directory is watched so editors that replace the file still
// trigger a reload.
func (l *Loader) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	log := l.log.WithField("path", target)
	log.Debug("watching profile")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.WithField("op", event.Op.String()).Debug("profile changed")
			_ = l.LoadFile(target)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("profile watcher error")
		}
	}
}
