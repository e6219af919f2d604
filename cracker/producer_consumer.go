package cracker

import (
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/silo/grille"
	"code.hybscloud.com/silo/queue"
)

// ProducerConsumerDriver feeds grilles through a bounded PortionQueue from a
// fixed pool of producers to a self-tuning pool of consumers. Every
// milestone sample nudges the consumer count up or down based on whether
// throughput is still improving, using an asymmetric +1/-2 threshold so a
// single bad sample doesn't immediately reverse direction.
//
// Go's WaitGroup replaces the original's explicit queue of thread handles:
// consumers register with the group before they start and the group itself
// tracks how many remain, so there is nothing to separately enqueue and
// join.
type ProducerConsumerDriver struct {
	initialConsumerCount int
	producerCount        int
	portionQueue         queue.PortionQueue[grille.Grille]

	consumerCount      atomix.Int64
	consumerWG         sync.WaitGroup
	shutdownNConsumers atomix.Int64

	milestoneMu          sync.Mutex
	improving            int
	addingThreads        bool
	prevGrillesPerSecond uint64
	bestConsumerCount    int64
	bestGrillesPerSecond uint64
}

// NewProducerConsumerDriver constructs a driver with the given producer
// count and initial consumer count, feeding through portionQueue.
func NewProducerConsumerDriver(initialConsumerCount, producerCount int, portionQueue queue.PortionQueue[grille.Grille]) *ProducerConsumerDriver {
	return &ProducerConsumerDriver{
		initialConsumerCount: initialConsumerCount,
		producerCount:        producerCount,
		portionQueue:         portionQueue,
		addingThreads:        true,
	}
}

func (d *ProducerConsumerDriver) BruteForce(ctx *Context) error {
	var producerWG sync.WaitGroup
	nextBegin := uint64(0)
	intervalLength := ctx.GrilleCount / uint64(d.producerCount)
	for i := 0; i < d.producerCount; i++ {
		end := nextBegin + intervalLength
		if i == d.producerCount-1 {
			end = ctx.GrilleCount
		}

		producerWG.Add(1)
		go func(begin, end uint64) {
			defer producerWG.Done()
			enum := grille.NewEnumerator(uint8(ctx.SideLength/2), begin, end)
			for {
				g, ok := enum.CloneNext()
				if !ok {
					return
				}
				d.portionQueue.AddPortion(g)
			}
		}(nextBegin, end)

		nextBegin += intervalLength
	}

	for i := 0; i < d.initialConsumerCount; i++ {
		d.startConsumerThread(ctx)
	}

	producerWG.Wait()
	d.portionQueue.EnsureAllPortionsAreRetrieved()

	// All portions are visible to consumers and accounted for; nothing will
	// start or stop a consumer from here on, so the current consumerCount is
	// final.
	for ctx.GrilleCountSoFar() < ctx.GrilleCount {
	}
	d.portionQueue.StopConsumers(int(d.consumerCount.LoadAcquire()))

	d.consumerWG.Wait()
	return nil
}

func (d *ProducerConsumerDriver) startConsumerThread(ctx *Context) {
	d.consumerCount.AddAcqRel(1)
	d.consumerWG.Add(1)
	go func() {
		defer d.consumerWG.Done()
		for {
			g, ok := d.portionQueue.RetrievePortion()
			if !ok {
				d.consumerCount.AddAcqRel(-1)
				return
			}

			count := ctx.ApplyGrille(&g)
			ctx.RegisterOneAppliedGrill(d, count)

			if d.shutdownNConsumers.LoadAcquire() > 0 {
				if d.tryConsumeShutdownRequest() {
					return
				}
			}
		}
	}()
}

// tryConsumeShutdownRequest claims one pending shutdown request and retires
// this consumer, unless doing so would leave zero consumers running, in
// which case both the shutdown request and the consumer slot are restored.
func (d *ProducerConsumerDriver) tryConsumeShutdownRequest() bool {
	oldShutdown := d.shutdownNConsumers.AddAcqRel(-1) + 1
	if oldShutdown <= 0 {
		d.shutdownNConsumers.AddAcqRel(1)
		return false
	}

	oldConsumers := d.consumerCount.AddAcqRel(-1) + 1
	if oldConsumers > 1 {
		return true
	}
	d.consumerCount.AddAcqRel(1)
	d.shutdownNConsumers.AddAcqRel(1)
	return false
}

func (d *ProducerConsumerDriver) TryMilestone(ctx *Context, milestoneEnd time.Time, grilleCountSoFar uint64) {
	if !d.milestoneMu.TryLock() {
		return
	}
	defer d.milestoneMu.Unlock()

	status := fmt.Sprintf("consumer threads: %d; queue size: %d / %d",
		d.consumerCount.LoadAcquire(), d.portionQueue.Size(), d.portionQueue.MaxSize())

	grillesPerSecond, ok := ctx.Milestone(milestoneEnd, grilleCountSoFar, status)
	if !ok {
		return
	}

	if grillesPerSecond > d.bestGrillesPerSecond {
		d.bestGrillesPerSecond = grillesPerSecond
		d.bestConsumerCount = d.consumerCount.LoadAcquire()
	}

	if ctx.GrilleCountSoFar() >= ctx.GrilleCount {
		return
	}

	switch {
	case grillesPerSecond < d.prevGrillesPerSecond:
		d.improving--
	case grillesPerSecond > d.prevGrillesPerSecond:
		d.improving++
	}

	if d.improving >= 1 || d.improving <= -2 {
		if d.improving < 0 {
			d.addingThreads = !d.addingThreads
		}
		d.improving = 0

		if d.addingThreads {
			d.startConsumerThread(ctx)
		} else {
			d.shutdownNConsumers.AddAcqRel(1)
		}
	}

	d.prevGrillesPerSecond = grillesPerSecond
}

func (d *ProducerConsumerDriver) MilestonesSummary() string {
	return fmt.Sprintf("best consumer threads: %d", d.bestConsumerCount)
}
