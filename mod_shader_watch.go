package jyu

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Reloader is anything rebuilt from source files, such as a
// *gpu.ShaderProgram.
type Reloader interface {
	Files() []string
	Reload() error
}

// ShaderWatcher reloads shader programs when their files change. File events
// arrive on the watcher's goroutine but are only acted on from Poll, which
// the render loop calls once per frame, so reloads happen on the GL thread.
type ShaderWatcher struct {
	watcher   *fsnotify.Watcher
	logger    Logger
	callbacks map[string][]watchEntry
	dirs      map[string]bool
	nextID    int
}

// watchEntry is one registration. Files of the same program share an id, so
// the program reloads once however many of them change.
type watchEntry struct {
	id int
	fn func()
}

func NewShaderWatcher(logger Logger) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &ShaderWatcher{
		watcher:   w,
		logger:    logger,
		callbacks: make(map[string][]watchEntry),
		dirs:      make(map[string]bool),
	}, nil
}

// Watch calls onChange after path is written. The containing directory is
// watched so editors that replace files on save are still seen.
func (w *ShaderWatcher) Watch(path string, onChange func()) error {
	return w.watch(path, watchEntry{id: w.newID(), fn: onChange})
}

func (w *ShaderWatcher) newID() int {
	w.nextID++
	return w.nextID
}

func (w *ShaderWatcher) watch(path string, entry watchEntry) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.callbacks[abs] = append(w.callbacks[abs], entry)
	return nil
}

// WatchProgram reloads r whenever one of its files changes. A failed reload
// is logged and the previous program stays active.
func (w *ShaderWatcher) WatchProgram(r Reloader) error {
	entry := watchEntry{id: w.newID()}
	entry.fn = func() {
		if err := r.Reload(); err != nil {
			w.logger.Errorf("shader reload: %v", err)
			return
		}
		w.logger.Infof("reloaded shader %v", r.Files())
	}
	for _, path := range r.Files() {
		if err := w.watch(path, entry); err != nil {
			return err
		}
	}
	return nil
}

// Poll drains pending file events without blocking and runs every callback
// watching a changed file once, so a program whose files changed together
// reloads once. It returns the number of files that changed.
func (w *ShaderWatcher) Poll() int {
	changed := make(map[string]bool)
	for drained := false; !drained; {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				drained = true
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(e.Name); err == nil {
				if _, watched := w.callbacks[abs]; watched {
					changed[abs] = true
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				drained = true
				continue
			}
			w.logger.Warnf("shader watcher: %v", err)
		default:
			drained = true
		}
	}

	ran := make(map[int]bool)
	for path := range changed {
		for _, entry := range w.callbacks[path] {
			if ran[entry.id] {
				continue
			}
			ran[entry.id] = true
			entry.fn()
		}
	}
	return len(changed)
}

func (w *ShaderWatcher) Close() error {
	return w.watcher.Close()
}

// ShaderWatchModule provides a ShaderWatcher resource polled in PreUpdate.
type ShaderWatchModule struct{}

func (ShaderWatchModule) Install(app *App, cmd *Commands) error {
	w, err := NewShaderWatcher(app.Logger())
	if err != nil {
		return err
	}
	app.onShutdown(func() {
		if err := w.Close(); err != nil {
			app.Logger().Warnf("close shader watcher: %v", err)
		}
	})
	cmd.AddResources(w)
	app.UseSystem(System(shaderWatchSystem).InStage(PreUpdate))
	return nil
}

func shaderWatchSystem(w *ShaderWatcher) {
	w.Poll()
}
