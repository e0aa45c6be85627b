package editor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// LoadFunc reads the watched file and returns the edits it implies.
type LoadFunc func(path string) ([]Edit, error)

// FileWatcher turns changes to one file into panel edits. It watches the
// parent directory so atomic saves (write to temp, rename over) are seen.
type FileWatcher struct {
	path    string
	load    LoadFunc
	out     chan<- Edit
	watcher *fsnotify.Watcher
	log     *slog.Logger
}

func NewFileWatcher(path string, load LoadFunc, out chan<- Edit, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}
	return &FileWatcher{path: abs, load: load, out: out, watcher: w, log: logger}, nil
}

// Run forwards edits until ctx is done or the watcher is closed. A send
// blocks only while the edit queue is full.
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			edits, err := fw.load(fw.path)
			if err != nil {
				fw.log.Warn("reload failed", "path", fw.path, "error", err)
				continue
			}
			for _, ed := range edits {
				select {
				case fw.out <- ed:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watch error", "path", fw.path, "error", err)
		}
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
