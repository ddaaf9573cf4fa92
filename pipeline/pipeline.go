// Package pipeline drives the generation flow for source files: parse,
// extract, classify, emit, write. Files are independent; the batch runner
// fans them out over a bounded worker pool while all phases for one file
// stay sequential.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/superfastgen/superfastgen/classify"
	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/dart"
	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/extract"
	"github.com/superfastgen/superfastgen/gen"
	"github.com/superfastgen/superfastgen/logger"
)

type Pipeline struct {
	cfg    *config.Config
	writer *Writer
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		writer: NewWriter(),
	}
}

// FindDartFiles walks root collecting source files, skipping generated
// companions. Results are sorted for deterministic batch order.
func FindDartFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".dart") || gen.IsGeneratedPath(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discovering sources under %s", root)
	}
	sort.Strings(files)
	return files, nil
}

// RunFile executes every phase for one source file. Failures are recorded
// in the report and scoped to the file; only the report carries them.
func (p *Pipeline) RunFile(path string, report *Report) {
	src, err := os.ReadFile(path)
	if err != nil {
		report.Error(fmt.Sprintf("%s: %v", path, err))
		return
	}

	file, err := dart.Parse(path, src)
	if err != nil {
		logger.Warnw("Skipping unparseable file", "path", path, "error", err)
		report.Error(err.Error())
		return
	}

	decls := extract.Extract(file)
	report.FileProcessed()
	if len(decls) == 0 {
		return
	}

	enabled := p.cfg.EnabledVariants()
	var targets []gen.Target
	for i := range decls {
		d := &decls[i]
		c, err := classify.Classify(d)
		if err != nil {
			// Conflicts skip the declaration, not the file
			logger.Warnw("Skipping declaration", "name", d.Name, "error", err)
			report.Error(err.Error())
			continue
		}
		if !c.Any() {
			continue
		}
		targets = append(targets, gen.Target{Decl: d, Class: c})
	}
	if len(targets) == 0 {
		return
	}

	results := gen.EmitFile(path, targets, enabled)
	for _, t := range targets {
		for _, w := range t.Decl.Warnings {
			report.Warn(fmt.Sprintf("%s: %s: %s", path, w.Declaration, w.Message))
		}
	}

	for _, res := range results {
		wrote, err := p.writer.Write(res.Path, res.Content)
		if err != nil {
			report.Error(err.Error())
			continue
		}
		report.Emitted(res.Variant)
		if wrote {
			logger.Debugw("Wrote companion", "path", res.Path, "variant", res.Variant)
		}
	}
}

// RunBatch discovers every source under root and processes them on a
// bounded worker pool. The only fatal error is failed discovery or a
// cancelled context; per-file problems land in the report.
func (p *Pipeline) RunBatch(ctx context.Context, root string) (*Report, error) {
	files, err := FindDartFiles(root)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	logger.Infow("Starting generation run", "run_id", report.RunID, "files", len(files), "workers", p.cfg.Watch.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Watch.Workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.RunFile(path, report)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, errors.Wrap(err, "generation run interrupted")
	}
	return report, nil
}

// RemoveCompanions deletes the generated outputs paired with a source file,
// used when the source itself is deleted
func (p *Pipeline) RemoveCompanions(path string) error {
	if err := p.writer.Remove(gen.FreezedPath(path)); err != nil {
		return err
	}
	return p.writer.Remove(gen.CodecPath(path))
}

// CleanGenerated removes every companion file under root and returns how
// many were deleted
func CleanGenerated(root string) (int, error) {
	var removed int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !gen.IsGeneratedPath(path) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(errors.ErrUnwritableOutput, "removing %s: %v", path, err)
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, err
	}
	return removed, nil
}
