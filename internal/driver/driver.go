// Package driver runs the compilation of one build target and feeds
// every problem it finds into a diag.Handler. The heavy lifting of
// turning problems into protocol traffic lives in internal/report;
// the driver only decides what to scan and in what degree of
// parallelism.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"veld/internal/diag"
	"veld/internal/project"
)

// Sink consumes problems and lifecycle events for one compile task.
// report.Reporter is the production implementation.
type Sink interface {
	diag.Handler
	Start()
	Finish()
}

// Options configures one Compile run.
type Options struct {
	// Jobs caps the worker pool; 0 means NumCPU.
	Jobs int
	// Cache, when non-nil, replays scan results for unchanged files.
	Cache *Cache
	// Logf receives driver progress lines; nil discards them.
	Logf func(format string, args ...any)
}

// metrics tracks per-run driver counters.
type metrics struct {
	filesScanned  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	problemsFound atomic.Int64
}

// Compile scans every source of target, reporting problems and file
// visits to sink from concurrent workers, and brackets the whole run
// in sink.Start/sink.Finish. The returned error covers driver
// failures (unreadable directories and the like), never problems in
// the sources themselves — those travel through the sink.
func Compile(ctx context.Context, target *project.Target, sink Sink, opts Options) error {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	files, err := ListSources(target.Root)
	if err != nil {
		return fmt.Errorf("failed to list sources of %q: %w", target.Name, err)
	}

	sink.Start()
	defer sink.Finish()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var m metrics
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			problems, err := scanWithCache(file, opts.Cache, &m)
			if err != nil {
				return err
			}
			for _, p := range problems {
				diag.Log(sink, p)
			}
			m.problemsFound.Add(int64(len(problems)))
			sink.FileVisited(file)
			return nil
		})
	}
	err = g.Wait()

	logf("compiled %s: files=%d problems=%d cache_hits=%d cache_misses=%d",
		target.Name,
		m.filesScanned.Load(),
		m.problemsFound.Load(),
		m.cacheHits.Load(),
		m.cacheMisses.Load())
	return err
}

func scanWithCache(path string, cache *Cache, m *metrics) ([]diag.Problem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	m.filesScanned.Add(1)

	if cache == nil {
		return ScanSource(path, content), nil
	}
	key := ContentDigest(content)
	if problems, ok := cache.Get(key); ok {
		m.cacheHits.Add(1)
		return problems, nil
	}
	m.cacheMisses.Add(1)
	problems := ScanSource(path, content)
	if err := cache.Put(key, path, problems); err != nil {
		// A failed cache write only costs a rescan next run.
		return problems, nil
	}
	return problems, nil
}

// ListSources returns the target's .vd files in deterministic order.
func ListSources(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".vd") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
