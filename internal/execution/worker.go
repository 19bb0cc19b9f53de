package execution

import (
	"sync"
	"time"

	"wptr/internal/config"
	"wptr/internal/domain"
	"wptr/internal/ui"
)

// WorkerPool drains test buckets through a fixed number of workers. A
// worker runs its bucket strictly sequentially and pulls the next
// unclaimed bucket when done. The only shared mutable state is the
// results channel and the progress counters.
type WorkerPool struct {
	config    *config.Config
	runner    TestRunner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner TestRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all tests and collects their results. Order within a
// bucket matches discovery order; order across buckets is undefined.
func (wp *WorkerPool) Execute(tests []domain.TestToRun) ([]domain.CompletedTest, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}
	startTime := time.Now()

	buckets := wp.scheduler.Partition(tests)
	workers := wp.config.Workers(len(tests))
	if workers > len(buckets) {
		workers = len(buckets)
	}
	timeouts := TimeoutsFor(wp.config.InCI())

	queue := make(chan Bucket, len(buckets))
	for _, b := range buckets {
		queue <- b
	}
	close(queue)
	results := make(chan domain.CompletedTest, len(tests))

	// Per-case reporting stays live only while buckets cannot interleave;
	// otherwise it degrades to counting at file completion.
	live := workers == 1 || len(buckets) == 1

	var mu sync.Mutex
	var completedFiles, passedCases, failedCases int

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for bucket := range queue {
				for _, test := range bucket.Tests {
					var progress ProgressFunc
					if live && wp.progress != nil {
						progress = func(c domain.TestCaseResult) {
							mu.Lock()
							if c.Passed {
								passedCases++
							} else {
								failedCases++
							}
							wp.progress.Update(completedFiles, passedCases, failedCases)
							mu.Unlock()
						}
					}
					result := wp.runner.RunSingleTest(test, progress, timeouts)
					results <- domain.CompletedTest{Test: test, Result: result}

					mu.Lock()
					completedFiles++
					if progress == nil {
						for _, c := range result.Cases {
							if c.Passed {
								passedCases++
							} else {
								failedCases++
							}
						}
					}
					if wp.progress != nil {
						wp.progress.Update(completedFiles, passedCases, failedCases)
					}
					mu.Unlock()
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []domain.CompletedTest
	for result := range results {
		all = append(all, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return all, time.Since(startTime), nil
}
