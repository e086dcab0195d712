package wavefunction

import "sync"

// minChunk keeps tiny evaluations on the calling goroutine.
const minChunk = 4096

// parallelFor runs fn over [0, n) split into at most workers contiguous
// chunks. Chunks never overlap, so fn may write its own output range freely.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
