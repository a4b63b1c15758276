// Package watch reports changes to the corpus file made outside the process.
package watch

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event signals that the watched file was written, created or replaced.
type Event struct {
	Path string
}

// FileWatcher watches a single file through its parent directory, so editors
// that save by renaming a temp file over it are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &FileWatcher{watcher: w, path: abs}, nil
}

// Watch starts monitoring and emits an Event per relevant change until ctx is done.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan Event, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case events <- Event{Path: w.path}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[ERROR] watch %s: %v", w.path, err)
			}
		}
	}()
	return events, nil
}

// Stop stops the watcher.
func (w *FileWatcher) Stop() error {
	return w.watcher.Close()
}
