package webhook

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file whenever it changes, applying the result to
// the dispatcher. The parent directory is watched because editors typically
// replace the file rather than write it in place. Invalid content is logged
// and the previous settings stay active. Watch returns once the watcher is
// running; it stops when ctx is cancelled.
func (d *Dispatcher) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		reload := func() {
			settings, err := LoadSettings(target)
			if err != nil {
				d.log.Warn("webhook settings reload failed", "path", target, "err", err)
				return
			}
			d.Apply(settings)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Editors fire bursts of events for one save; collapse them.
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(200*time.Millisecond, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.log.Warn("webhook settings watcher error", "err", err)
			}
		}
	}()

	return nil
}
