// Package parallel provides a small bounded worker pool built around a
// sync.WaitGroup fan-out/fan-in. Unlike a reflection-based dispatcher over
// arbitrary function values with no concurrency cap, kernelshap's inference
// driver only ever fans out a fixed, typed job (run one oracle sub-batch),
// so this version is typed around a job/result pair and bounded by an
// explicit worker count, so a caller streaming thousands of sub-batches
// doesn't spawn thousands of goroutines at once.
package parallel

import (
	"context"
	"sync"
)

// Run executes work(i) for i in [0, n) across at most maxWorkers goroutines,
// collecting each call's (result, error) by index. It returns the first
// error encountered (by index order) and stops dispatching new work once
// ctx is cancelled or an error has occurred. Results preserve input order
// regardless of completion order, since callers depend on oracle batches
// lining back up with the rows that produced them.
func Run[T any](ctx context.Context, n, maxWorkers int, work func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > n {
		maxWorkers = n
	}
	if n == 0 {
		return nil, nil
	}

	results := make([]T, n)
	errs := make([]error, n)

	jobs := make(chan int)
	var wg sync.WaitGroup

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := work(runCtx, i)
				results[i] = r
				if err != nil {
					errs[i] = err
					cancel()
				}
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-runCtx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
