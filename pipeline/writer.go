package pipeline

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/logger"
)

// Writer lands generated text on disk. Writes to the same output path are
// serialized, content is compared first so untouched companions keep their
// mtime, and replacement goes through a temp file plus rename so readers
// never observe a partial file.
type Writer struct {
	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

func NewWriter() *Writer {
	return &Writer{paths: make(map[string]*sync.Mutex)}
}

func (w *Writer) pathLock(path string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.paths[path]
	if !ok {
		l = &sync.Mutex{}
		w.paths[path] = l
	}
	return l
}

// Write stores content at path unless the file already holds exactly that
// content. It reports whether the file changed on disk.
func (w *Writer) Write(path, content string) (bool, error) {
	l := w.pathLock(path)
	l.Lock()
	defer l.Unlock()

	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		logger.Debugw("Output unchanged, skipping write", "path", path)
		return false, nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return false, errors.Wrapf(errors.ErrUnwritableOutput, "creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, errors.Wrapf(errors.ErrUnwritableOutput, "writing %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, errors.Wrapf(errors.ErrUnwritableOutput, "closing %s: %v", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, errors.Wrapf(errors.ErrUnwritableOutput, "replacing %s: %v", path, err)
	}
	return true, nil
}

// Remove deletes a generated file, tolerating its absence
func (w *Writer) Remove(path string) error {
	l := w.pathLock(path)
	l.Lock()
	defer l.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrUnwritableOutput, "removing %s: %v", path, err)
	}
	return nil
}
