// Package editor provides fragment sources that are not GUI widgets.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileEditor treats a file on disk as the editor. Saving the file from any
// external editor reports an update.
type FileEditor struct {
	path     string
	dispatch func(func())

	watcher *fsnotify.Watcher

	mu        sync.Mutex
	last      string
	callbacks []func(text string)
}

// NewFileEditor watches path. dispatch runs update callbacks; pass nil to run
// them on the watcher goroutine. The directory is watched rather than the
// file so that editors which replace the file on save keep working.
func NewFileEditor(path string, dispatch func(func())) (*FileEditor, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	return &FileEditor{
		path:     path,
		dispatch: dispatch,
		watcher:  watcher,
	}, nil
}

func (e *FileEditor) Path() string {
	return e.path
}

// Read returns the file's current content.
func (e *FileEditor) Read() (string, error) {
	b, err := os.ReadFile(e.path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UpdateCode writes text to the file if it does not exist yet. An existing
// file is left alone; its content wins.
func (e *FileEditor) UpdateCode(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := os.Stat(e.path); err == nil {
		return
	} else if !errors.Is(err, fs.ErrNotExist) {
		return
	}

	if err := os.WriteFile(e.path, []byte(text), 0o644); err == nil {
		e.last = text
	}
}

func (e *FileEditor) OnUpdate(f func(text string)) {
	e.mu.Lock()
	e.callbacks = append(e.callbacks, f)
	e.mu.Unlock()
}

// Watch reports file changes until ctx is done or the watcher fails.
func (e *FileEditor) Watch(ctx context.Context) error {
	defer e.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)

		case err, ok := <-e.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", e.path, err)

		case event, ok := <-e.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != e.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			e.changed()
		}
	}
}

func (e *FileEditor) changed() {
	text, err := e.Read()
	if err != nil {
		return
	}

	e.mu.Lock()
	if text == e.last {
		e.mu.Unlock()
		return
	}
	e.last = text
	callbacks := append([]func(string){}, e.callbacks...)
	e.mu.Unlock()

	e.dispatch(func() {
		for _, f := range callbacks {
			f(text)
		}
	})
}
