package queue

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// BlownQueue "blows up" a NonBlockingQueue backing — unbounded or
// loosely-bounded — into a strict-capacity MPMC queue with blocking
// back-pressure. The fast path (no one blocked) is purely atomic; a mutex
// is acquired only when a waiter has published itself or a retrieval
// brings the size down to zero, and that single
// mutex backs all three condition variables so a waiter publishing itself
// between a would-be waker's hint check and its lock acquisition can never
// be missed.
type BlownQueue[E any] struct {
	backing NonBlockingQueue[E]
	maxSize uint64

	size atomix.Int64
	_    pad

	mu              sync.Mutex
	notFull         sync.Cond
	notEmpty        sync.Cond
	empty           sync.Cond
	workDone        bool
	producerWaiting atomix.Bool
	consumerWaiting atomix.Bool
}

// NewBlownQueue wraps backing as a strict-capacity queue of maxSize. If
// backing additionally implements a Cap() int method reporting a hard
// power-of-two capacity, maxSize is rounded up to match it, since the
// backing — not BlownQueue — is then the one enforcing the hard limit.
func NewBlownQueue[E any](maxSize uint64, backing NonBlockingQueue[E]) *BlownQueue[E] {
	if capper, ok := backing.(interface{ Cap() int }); ok {
		if rounded := uint64(capper.Cap()); rounded > maxSize {
			maxSize = rounded
		}
	}
	q := &BlownQueue[E]{backing: backing, maxSize: maxSize}
	q.notFull.L = &q.mu
	q.notEmpty.L = &q.mu
	q.empty.L = &q.mu
	return q
}

// AddPortion reserves capacity and publishes p, blocking while the queue is
// at maxSize.
func (q *BlownQueue[E]) AddPortion(p E) {
	backoff := iox.Backoff{}
	for {
		if uint64(q.size.LoadAcquire()) >= q.maxSize {
			q.mu.Lock()
			// The hint is re-published on every pass: each notify consumes
			// it, so a producer that loses the race for the freed slot and
			// waits again must make itself visible to the next consumer anew.
			for {
				q.producerWaiting.StoreRelease(true)
				if uint64(q.size.LoadAcquire()) < q.maxSize {
					break
				}
				q.notFull.Wait()
			}
			q.mu.Unlock()
		}

		if q.backing.TryEnqueue(&p) {
			break
		}
		backoff.Wait()
	}

	q.size.AddAcqRel(1)

	if q.consumerWaiting.CompareAndSwapAcqRel(true, false) {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	}
}

// RetrievePortion acquires a portion, or returns false once StopConsumers
// has been called and the backing is drained.
func (q *BlownQueue[E]) RetrievePortion() (E, bool) {
	if v, ok := q.backing.TryDequeue(); ok {
		q.onRetrieved()
		return v, true
	}

	q.mu.Lock()
	for {
		if v, ok := q.backing.TryDequeue(); ok {
			q.mu.Unlock()
			q.onRetrieved()
			return v, true
		}
		if q.workDone {
			q.mu.Unlock()
			var zero E
			return zero, false
		}
		q.consumerWaiting.StoreRelease(true)
		q.notEmpty.Wait()
	}
}

func (q *BlownQueue[E]) onRetrieved() {
	newSize := q.size.AddAcqRel(-1)

	if q.producerWaiting.CompareAndSwapAcqRel(true, false) {
		q.mu.Lock()
		q.notFull.Broadcast()
		q.mu.Unlock()
	}

	if newSize == 0 {
		q.mu.Lock()
		q.empty.Broadcast()
		q.mu.Unlock()
	}
}

// EnsureAllPortionsAreRetrieved blocks until size reaches zero. Called
// exactly once, after all producers have finished.
func (q *BlownQueue[E]) EnsureAllPortionsAreRetrieved() {
	q.mu.Lock()
	q.notEmpty.Broadcast()
	for q.size.LoadAcquire() != 0 {
		q.empty.Wait()
	}
	q.mu.Unlock()
}

// StopConsumers marks the queue done and wakes every blocked consumer. The
// queue must not be used after this call.
func (q *BlownQueue[E]) StopConsumers(_ int) {
	q.mu.Lock()
	q.workDone = true
	q.notEmpty.Broadcast()
	q.mu.Unlock()

	if d, ok := q.backing.(Drainer); ok {
		d.Drain()
	}
}

// Size returns the number of logically-accepted-but-not-yet-retrieved
// portions. May transiently lead or lag the backing by a bounded amount.
func (q *BlownQueue[E]) Size() int64 { return q.size.LoadAcquire() }

// MaxSize returns the queue's capacity.
func (q *BlownQueue[E]) MaxSize() uint64 { return q.maxSize }
