// Package watch keeps generated companions in sync with source edits. The
// coordinator consumes change events, coalesces bursts per path with a
// cancellable debounce timer, and serializes regeneration so one path is
// never processed by two overlapping runs.
package watch

import (
	"sync"
	"time"

	"github.com/superfastgen/superfastgen/logger"
)

type EventKind int

const (
	Created EventKind = iota
	Modified
	Deleted
	ConfigChanged
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case ConfigChanged:
		return "config-changed"
	default:
		return "unknown"
	}
}

// Event is one change notification from the filesystem adapter
type Event struct {
	Path string
	Kind EventKind
}

// Hooks are the actions the coordinator drives. RunFile regenerates one
// source file, RemoveFile drops the companions of a deleted source, and
// FullRun rebuilds everything after a configuration change.
type Hooks struct {
	RunFile    func(path string)
	RemoveFile func(path string)
	FullRun    func()
}

// configKey collapses all config-changed events onto one debounce slot
const configKey = "\x00config"

type Coordinator struct {
	debounce time.Duration
	hooks    Hooks

	mu      sync.Mutex
	timers  map[string]*time.Timer
	running map[string]bool
	pending map[string]bool
	stopped bool
}

func NewCoordinator(debounce time.Duration, hooks Hooks) *Coordinator {
	return &Coordinator{
		debounce: debounce,
		hooks:    hooks,
		timers:   make(map[string]*time.Timer),
		running:  make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// Handle routes one event. Created and modified events arm (or re-arm) the
// path's debounce timer; deletions run immediately since there is nothing
// to coalesce; config changes trigger a debounced full rerun.
func (c *Coordinator) Handle(ev Event) {
	switch ev.Kind {
	case Created, Modified:
		c.arm(ev.Path, func() { c.launch(ev.Path, func() { c.hooks.RunFile(ev.Path) }) })
	case Deleted:
		c.cancel(ev.Path)
		logger.Infow("Source deleted, removing companions", "path", ev.Path)
		c.hooks.RemoveFile(ev.Path)
	case ConfigChanged:
		logger.Infow("Configuration changed, scheduling full rerun", "path", ev.Path)
		c.cancelAll()
		c.arm(configKey, func() { c.launch(configKey, c.hooks.FullRun) })
	}
}

// cancelAll drops every pending per-path timer; the full rerun that follows
// a config change covers those paths anyway
func (c *Coordinator) cancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, t := range c.timers {
		if key == configKey {
			continue
		}
		t.Stop()
		delete(c.timers, key)
	}
}

// arm starts or restarts the debounce timer for a key. A newer event always
// wins the coalescing window.
func (c *Coordinator) arm(key string, fire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if t, ok := c.timers[key]; ok {
		t.Stop()
	}
	c.timers[key] = time.AfterFunc(c.debounce, fire)
}

func (c *Coordinator) cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[key]; ok {
		t.Stop()
		delete(c.timers, key)
	}
}

// launch runs fn for a key, serializing overlapping runs. An event arriving
// while a run is in flight queues exactly one trailing run, so no update is
// lost and no path runs concurrently with itself.
func (c *Coordinator) launch(key string, fn func()) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.running[key] {
		c.pending[key] = true
		c.mu.Unlock()
		return
	}
	c.running[key] = true
	c.mu.Unlock()

	go func() {
		for {
			fn()
			c.mu.Lock()
			if c.pending[key] && !c.stopped {
				delete(c.pending, key)
				c.mu.Unlock()
				continue
			}
			delete(c.running, key)
			c.mu.Unlock()
			return
		}
	}()
}

// Stop cancels pending timers and prevents new runs from starting.
// In-flight runs finish; they are never cancelled midway.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
}
