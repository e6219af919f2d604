package app

import (
	"runtime"
	"sync"
	"time"
)

// heatCpu busy-spins cpuCount goroutines for duration, bringing every core
// to its steady-state clock frequency before the timed cracking run
// starts. This is a benchmarking artefact, not a correctness requirement,
// and is skipped whenever the run is verbose — a verbose run is for
// watching progress, not for measuring throughput.
func heatCpu(cpuCount int, duration time.Duration) {
	if cpuCount < 1 {
		cpuCount = 1
	}

	var wg sync.WaitGroup
	deadline := time.Now().Add(duration)
	for i := 0; i < cpuCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			x := uint64(1)
			for time.Now().Before(deadline) {
				for i := 0; i < 1<<16; i++ {
					x = x*2862933555777941757 + 3037000493
				}
			}
			runtime.KeepAlive(x)
		}()
	}
	wg.Wait()
}
