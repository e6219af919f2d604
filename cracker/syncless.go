package cracker

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/silo/grille"
)

// SynclessDriver partitions the ordinal space into one contiguous interval
// per worker ahead of time and never touches a shared queue: each worker
// owns its interval outright and only publishes an atomic progress counter
// for the milestone sampler to read.
type SynclessDriver struct {
	workersCount atomix.Int64

	milestoneMu sync.Mutex
	completion  []intervalCompletion
}

type intervalCompletion struct {
	processed *atomix.Int64
	total     uint64
}

func NewSynclessDriver() *SynclessDriver {
	return &SynclessDriver{}
}

func (d *SynclessDriver) BruteForce(ctx *Context) error {
	workerCount := uint64(runtime.NumCPU())
	if workerCount == 0 {
		workerCount = 1
	}

	d.completion = make([]intervalCompletion, workerCount)

	var wg sync.WaitGroup
	nextBegin := uint64(0)
	intervalLength := ctx.GrilleCount / workerCount
	for i := uint64(0); i < workerCount; i++ {
		end := nextBegin + intervalLength
		if i == workerCount-1 {
			end = ctx.GrilleCount
		}

		processed := &atomix.Int64{}
		d.completion[i] = intervalCompletion{processed: processed, total: end - nextBegin}
		d.workersCount.AddAcqRel(1)

		wg.Add(1)
		go func(begin, end uint64, processed *atomix.Int64) {
			defer wg.Done()
			defer d.workersCount.AddAcqRel(-1)

			enum := grille.NewEnumerator(uint8(ctx.SideLength/2), begin, end)
			for {
				g, ok := enum.BorrowNext()
				if !ok {
					return
				}
				count := ctx.ApplyGrille(g)
				ctx.RegisterOneAppliedGrill(d, count)
				processed.AddAcqRel(1)
			}
		}(nextBegin, end, processed)

		nextBegin += intervalLength
	}

	wg.Wait()
	return nil
}

func (d *SynclessDriver) TryMilestone(ctx *Context, milestoneEnd time.Time, grilleCountSoFar uint64) {
	if !d.milestoneMu.TryLock() {
		return
	}
	defer d.milestoneMu.Unlock()

	status := d.completionStatus()
	ctx.Milestone(milestoneEnd, grilleCountSoFar, status)
}

func (d *SynclessDriver) completionStatus() string {
	parts := make([]string, 0, len(d.completion))
	for _, ic := range d.completion {
		pct := float64(ic.processed.LoadAcquire()) * 100 / float64(ic.total)
		parts = append(parts, strconv.FormatFloat(pct, 'f', 1, 64))
	}
	return fmt.Sprintf("worker threads: %d; completion per thread: %s%% done",
		d.workersCount.LoadAcquire(), strings.Join(parts, "/"))
}

func (d *SynclessDriver) MilestonesSummary() string { return "" }
