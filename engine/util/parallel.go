package util

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ParallelFor runs body(i) for every i in [0, count) across NumCPU workers
// and returns after all of them finished. Iterations must be independent.
func ParallelFor(count int, body func(i int)) {
	workers := runtime.NumCPU()
	if workers > count {
		workers = count
	}
	if workers <= 1 {
		for i := 0; i < count; i++ {
			body(i)
		}
		return
	}

	var cursor int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				// grab a small batch to keep the atomic traffic down
				start := atomic.AddInt64(&cursor, batchSize) - batchSize
				if start >= int64(count) {
					return
				}
				end := start + batchSize
				if end > int64(count) {
					end = int64(count)
				}
				for i := start; i < end; i++ {
					body(int(i))
				}
			}
		}()
	}
	wg.Wait()
}

const batchSize = 64
