package scanner

import (
	"context"
	"log/slog"
	"sync"

	"winnow/internal/hashing"
	"winnow/internal/logging"
)

// Pool executes the pipeline over a set of candidate paths with at most Jobs
// tasks in flight. Tasks are independent; no file's processing depends on
// another's outcome. Run blocks until every task completes — there is no
// mid-scan cancellation, a scan runs to completion or the process dies.
type Pool struct {
	Jobs     int
	Pipeline *Pipeline
	SkipLog  *SkipLog
	Logger   *slog.Logger

	// OnResult, when set, is invoked from worker goroutines as each task
	// finishes (progress reporting). It must be safe for concurrent use.
	OnResult func(Result)
}

// Run processes every candidate and returns one result per input, in input
// order.
func (p *Pool) Run(ctx context.Context, candidates []string) []Result {
	logger := logging.NewComponentLogger(p.Logger, "pool")

	jobs := p.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(candidates))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

	for i, path := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, candidate string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := p.Pipeline.Process(ctx, candidate)
			results[idx] = result

			if !result.Outcome.Comparable() {
				p.recordSkip(logger, result)
			}
			if p.OnResult != nil {
				p.OnResult(result)
			}
		}(i, path)
	}

	wg.Wait()
	return results
}

func (p *Pool) recordSkip(logger *slog.Logger, result Result) {
	logger.Debug("file skipped",
		logging.String("path", result.File.Path),
		logging.String("reason", string(result.Outcome.Reason())))

	if p.SkipLog == nil {
		return
	}
	if err := p.SkipLog.Record(result.Outcome.Reason(), result.File.Path, result.Outcome.Detail()); err != nil {
		logger.Warn("skip log append failed",
			logging.String(logging.FieldEventType, "skiplog_append_failed"),
			logging.String("path", result.File.Path),
			logging.Error(err))
	}
}

// CountSkips tallies non-comparable results.
func CountSkips(results []Result) int {
	count := 0
	for _, result := range results {
		if !result.Outcome.Comparable() {
			count++
		}
	}
	return count
}

// SkipReasons aggregates skip counts by reason.
func SkipReasons(results []Result) map[hashing.Reason]int {
	counts := make(map[hashing.Reason]int)
	for _, result := range results {
		if !result.Outcome.Comparable() {
			counts[result.Outcome.Reason()]++
		}
	}
	return counts
}
