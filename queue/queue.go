// Package queue implements the bounded MPMC portion-queue family: the
// NonBlockingQueue capability and its backing algorithms, the BlownQueue
// composite that turns any backing into a strict-capacity blocking queue,
// and the monolithic TextbookQueue/SyncBoundedQueue/OneTBBBoundedQueue
// alternatives.
package queue

import "code.hybscloud.com/silo/internal/errs"

// NonBlockingQueue is an unbounded or loosely-bounded MPMC core whose
// operations never block.
//
// TryEnqueue may fail only for capacity-related reasons; on failure the
// caller retains p and may retry. TryDequeue returns false when no portion
// is visible, which does not necessarily mean the queue is empty — it may
// be transient contention. Neither operation guarantees cross-thread
// ordering.
type NonBlockingQueue[E any] interface {
	TryEnqueue(p *E) bool
	TryDequeue() (E, bool)
}

// Drainer is implemented by backings that gate TryDequeue on a producer
// threshold to prevent livelock. Drain tells the backing that no further
// enqueues will occur, so consumers can fully empty it.
type Drainer interface {
	Drain()
}

// PortionQueue is the interface ProducerConsumerDriver depends on: a
// strict-capacity blocking MPMC queue, whether implemented by wrapping a
// NonBlockingQueue backing (BlownQueue) or monolithically (TextbookQueue,
// SyncBoundedQueue, OneTBBBoundedQueue).
type PortionQueue[E any] interface {
	AddPortion(p E)
	RetrievePortion() (E, bool)
	EnsureAllPortionsAreRetrieved()
	// StopConsumers marks the queue done. BlownQueue and TextbookQueue
	// flip a single workDone flag and ignore finalConsumerCount; the
	// channel/list-backed monolithic queues have no such flag and instead
	// push one stop sentinel per consumer, so finalConsumerCount matters
	// there.
	StopConsumers(finalConsumerCount int)
	Size() int64
	MaxSize() uint64
}

// uncapped hides a backing's hard capacity from BlownQueue. Several
// variants use a fixed-size core purely for its internal headroom: the core
// is sized at or above the wrapper's capacity, so its own limit is never the
// binding one and must not inflate the wrapper's reported maxSize the way a
// genuinely capacity-rounding backing does.
type uncapped[E any] struct {
	inner NonBlockingQueue[E]
}

func uncap[E any](inner NonBlockingQueue[E]) uncapped[E] {
	return uncapped[E]{inner: inner}
}

func (u uncapped[E]) TryEnqueue(p *E) bool { return u.inner.TryEnqueue(p) }

func (u uncapped[E]) TryDequeue() (E, bool) { return u.inner.TryDequeue() }

func (u uncapped[E]) Drain() {
	if d, ok := u.inner.(Drainer); ok {
		d.Drain()
	}
}

// roundToPow2 rounds n up to the next power of 2, minimum 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// errUnknownVariant is returned by NewPortionQueue for an unrecognised name.
func errUnknownVariant(name string) error {
	return errs.Newf(errs.Configuration, "queue: unknown variant %q", name)
}
