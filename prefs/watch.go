package prefs

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonwraymond/utilkit/observe"
)

// Watch reloads the store whenever the backing file is written, created,
// or renamed into place, coalescing bursts of events within the debounce
// window. A value is sent on the returned channel after each reload; sends
// are dropped while a previous one is unread. The channel is closed when
// ctx is done.
//
// The parent directory is watched rather than the file so that editors
// which replace the file atomically are still observed.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(s.filename)); err != nil {
		_ = w.Close()
		return nil, err
	}

	reloaded := make(chan struct{}, 1)
	go func() {
		var (
			mu     sync.Mutex
			timer  *time.Timer
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			_ = w.Close()
			close(reloaded)
		}()

		reload := func() {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			s.Load()
			s.logger.Debug(ctx, "reloaded", observe.F("file", s.filename))
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != s.filename {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(s.debounce, reload)
				mu.Unlock()

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn(ctx, "watch error", observe.F("file", s.filename), observe.F("error", err))
			}
		}
	}()

	return reloaded, nil
}
