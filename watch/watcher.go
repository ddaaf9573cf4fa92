package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/gen"
	"github.com/superfastgen/superfastgen/logger"
)

// Watcher adapts filesystem notifications into coordinator events. It
// watches every directory under the source root (new directories are picked
// up as they appear) plus the project configuration files.
type Watcher struct {
	fsw         *fsnotify.Watcher
	coord       *Coordinator
	configFiles map[string]bool
	done        chan struct{}
}

func NewWatcher(root string, projectRoot string, coord *Coordinator) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating filesystem watcher")
	}

	w := &Watcher{
		fsw:         fsw,
		coord:       coord,
		configFiles: make(map[string]bool),
		done:        make(chan struct{}),
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	// Config edits invalidate all cached state, so the project files are
	// watched alongside the source tree
	for _, name := range []string{config.ConfigFileName, "pubspec.yaml"} {
		path := filepath.Join(projectRoot, name)
		w.configFiles[path] = true
		if _, err := os.Stat(path); err == nil {
			if err := fsw.Add(path); err != nil {
				logger.Warnw("Cannot watch config file", "path", path, "error", err)
			}
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", root)
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
		return nil
	})
}

// Start consumes notifications until Close. It runs on its own goroutine.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				w.dispatch(ev)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				logger.Errorw("Watcher error", "error", err)
			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) dispatch(ev fsnotify.Event) {
	path := ev.Name

	if w.configFiles[path] {
		w.coord.Handle(Event{Path: path, Kind: ConfigChanged})
		return
	}

	// New directories join the watch set so nested sources are seen
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addTree(path); err != nil {
				logger.Warnw("Cannot watch new directory", "path", path, "error", err)
			}
			return
		}
	}

	if !strings.HasSuffix(path, ".dart") || gen.IsGeneratedPath(path) {
		return
	}

	switch {
	case ev.Op.Has(fsnotify.Create):
		w.coord.Handle(Event{Path: path, Kind: Created})
	case ev.Op.Has(fsnotify.Write):
		w.coord.Handle(Event{Path: path, Kind: Modified})
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		w.coord.Handle(Event{Path: path, Kind: Deleted})
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
