package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-renders the watched file after it changes, until ctx is
// canceled. Bursts of events within opts.Debounce trigger one render.
//
// The file's directory is watched rather than the file itself, because
// many editors save by writing a new file and renaming it into place.
func (s *Server) Watch(ctx context.Context) error {
	if s.opts.File == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.opts.File)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.opts.File), err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	rebuild := func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("re-render failed", "file", s.opts.File, "error", err)
			return
		}
		s.log.Info("re-rendered", "file", s.opts.File)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isWatchedFile(event.Name) || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			s.log.Debug("change detected", "file", event.Name, "op", event.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			if s.opts.Debounce <= 0 {
				timer = nil
				mu.Unlock()
				rebuild()
				continue
			}
			timer = time.AfterFunc(s.opts.Debounce, rebuild)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) isWatchedFile(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == s.opts.File
}
