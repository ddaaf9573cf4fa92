package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/superfastgen/superfastgen/config"
)

// Report accumulates the outcome of one generation run. All methods are safe
// for concurrent use by the batch workers.
type Report struct {
	RunID string

	mu               sync.Mutex
	filesProcessed   int
	emittedByVariant map[config.Variant]int
	warnings         []string
	errors           []string
}

func NewReport() *Report {
	return &Report{
		RunID:            uuid.NewString(),
		emittedByVariant: make(map[config.Variant]int),
	}
}

func (r *Report) FileProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filesProcessed++
}

func (r *Report) Emitted(v config.Variant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emittedByVariant[v]++
}

func (r *Report) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

func (r *Report) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Report) FilesProcessed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filesProcessed
}

// EmittedByVariant returns a copy of the per-variant emission counts
func (r *Report) EmittedByVariant() map[config.Variant]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[config.Variant]int, len(r.emittedByVariant))
	for k, v := range r.emittedByVariant {
		out[k] = v
	}
	return out
}

func (r *Report) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

func (r *Report) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

// HasErrors reports whether any file-scoped error was recorded; the CLI
// maps this to the process exit status
func (r *Report) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}
