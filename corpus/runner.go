package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/RyanBlaney/voz-pura/logging"
	"github.com/RyanBlaney/voz-pura/quality"
	"github.com/RyanBlaney/voz-pura/refine"
)

// RunnerConfig holds corpus-run configuration
type RunnerConfig struct {
	Workers  int                     `json:"workers"` // 0 means NumCPU
	Analyzer *quality.AnalyzerConfig `json:"analyzer"`
	Refiner  *refine.RefinerConfig   `json:"refiner"`
}

// DefaultRunnerConfig returns the default corpus configuration
func DefaultRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		Workers:  runtime.NumCPU(),
		Analyzer: quality.DefaultAnalyzerConfig(),
		Refiner:  refine.DefaultRefinerConfig(),
	}
}

// Runner fans corpus work out to a bounded worker pool. Files share no
// state, so each worker owns one file's buffers exclusively; results are
// collected in input order so output never depends on scheduling.
type Runner struct {
	workers  int
	analyzer *quality.Analyzer
	refiner  *refine.Refiner
	observer Observer
}

// NewRunner creates a runner. A nil observer discards progress events.
func NewRunner(config *RunnerConfig, observer Observer) (*Runner, error) {
	if config == nil {
		config = DefaultRunnerConfig()
	}
	if observer == nil {
		observer = NoOpObserver{}
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	analyzer, err := quality.NewAnalyzer(config.Analyzer)
	if err != nil {
		return nil, err
	}

	refiner, err := refine.NewRefiner(config.Refiner)
	if err != nil {
		return nil, err
	}

	return &Runner{
		workers:  workers,
		analyzer: analyzer,
		refiner:  refiner,
		observer: observer,
	}, nil
}

// AnalyzeAll scores every file, skipping ones that fail to decode. The
// returned records follow the input order of the files that succeeded.
// Only a corpus yielding zero records is an overall failure.
func (r *Runner) AnalyzeAll(ctx context.Context, files []string) ([]*quality.Record, error) {
	slots := make([]*quality.Record, len(files))

	r.run(ctx, len(files), func(i int) {
		path := files[i]
		r.observer.FileStarted(path)

		record, err := r.analyzer.AnalyzeFile(path)
		if err != nil {
			logging.Warn("Skipping unreadable file", logging.Fields{
				"file":  path,
				"error": err.Error(),
			})
			r.observer.FileFinished(path, err)
			return
		}

		slots[i] = record
		r.observer.FileFinished(path, nil)
	})

	records := make([]*quality.Record, 0, len(files))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no readable audio files among %d inputs", len(files))
	}

	return records, nil
}

// RefineAll refines every file into outputDir. Per-file failures are
// reported through the observer and do not stop the batch; the returned
// results cover the files that succeeded, in input order.
func (r *Runner) RefineAll(ctx context.Context, files []string, outputDir string) ([]*refine.Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	slots := make([]*refine.Result, len(files))

	r.run(ctx, len(files), func(i int) {
		path := files[i]
		r.observer.FileStarted(path)

		result, err := r.refiner.Refine(path, outputDir)
		if err != nil {
			logging.Warn("Refinement failed", logging.Fields{
				"file":  path,
				"error": err.Error(),
			})
			r.observer.FileFinished(path, err)
			return
		}

		slots[i] = result
		r.observer.FileFinished(path, nil)
	})

	results := make([]*refine.Result, 0, len(files))
	for _, res := range slots {
		if res != nil {
			results = append(results, res)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no files refined among %d inputs", len(files))
	}

	return results, nil
}

// RefineTopN refines the n highest-scoring records. The records are
// re-ranked here, so callers may pass them unsorted.
func (r *Runner) RefineTopN(ctx context.Context, records []*quality.Record, n int, outputDir string) ([]*refine.Result, error) {
	ranked := quality.SortByScore(records)
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}

	files := make([]string, len(ranked))
	for i, rec := range ranked {
		files[i] = rec.File
	}

	return r.RefineAll(ctx, files, outputDir)
}

// run executes fn(i) for every index through the worker pool. Cancellation
// takes effect between files, never mid-stage.
func (r *Runner) run(ctx context.Context, n int, fn func(i int)) {
	jobs := make(chan int, n)

	var wg sync.WaitGroup
	for rangeIdx := 0; rangeIdx < min(r.workers, max(n, 1)); rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}

// SaveRecords writes records to path as an indented JSON array sorted by
// quality score descending
func SaveRecords(path string, records []*quality.Record) error {
	ranked := quality.SortByScore(records)

	data, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
