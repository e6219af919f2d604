package queue

import "code.hybscloud.com/lfq"

// lfqFAABacking wraps lfq.MPMC, the FAA-based SCQ queue, as a bounded
// NonBlockingQueue. Capacity rounds up to a power of 2 (the backing's own
// requirement); BlownQueue is told the rounded size via Cap.
type lfqFAABacking[E any] struct {
	q *lfq.MPMC[E]
}

func newLFQFAABacking[E any](capacity int) *lfqFAABacking[E] {
	return &lfqFAABacking[E]{q: lfq.NewMPMC[E](capacity)}
}

func (b *lfqFAABacking[E]) TryEnqueue(p *E) bool {
	return b.q.Enqueue(p) == nil
}

func (b *lfqFAABacking[E]) TryDequeue() (E, bool) {
	v, err := b.q.Dequeue()
	return v, err == nil
}

func (b *lfqFAABacking[E]) Cap() int { return b.q.Cap() }

// Drain lets consumers empty the backing once producers are done, bypassing
// the threshold livelock guard.
func (b *lfqFAABacking[E]) Drain() { b.q.Drain() }

// lfqCASBacking wraps lfq.MPMCSeq, the CAS-based per-slot sequence-number
// queue (the "Compact" variant: n physical slots instead of 2n).
type lfqCASBacking[E any] struct {
	q *lfq.MPMCSeq[E]
}

func newLFQCASBacking[E any](capacity int) *lfqCASBacking[E] {
	return &lfqCASBacking[E]{q: lfq.NewMPMCSeq[E](capacity)}
}

func (b *lfqCASBacking[E]) TryEnqueue(p *E) bool {
	return b.q.Enqueue(p) == nil
}

func (b *lfqCASBacking[E]) TryDequeue() (E, bool) {
	v, err := b.q.Dequeue()
	return v, err == nil
}

func (b *lfqCASBacking[E]) Cap() int { return b.q.Cap() }

// nikolaevBoundedBacking reproduces the documented NikolaevBounded
// workaround: the original library corrupts the caller's argument when a
// push fails after the value has already been moved into the attempt. Go
// assignment always copies rather than moving, so the corruption itself
// cannot occur here — the workaround is kept anyway, as a named backing
// distinct from plain lfqFAABacking, because the benchmark variant names
// this specific bounded queue and callers expect a by-copy contract.
type nikolaevBoundedBacking[E any] struct {
	backing *lfqFAABacking[E]
}

func newNikolaevBoundedBacking[E any](capacity int) *nikolaevBoundedBacking[E] {
	return &nikolaevBoundedBacking[E]{backing: newLFQFAABacking[E](capacity)}
}

func (b *nikolaevBoundedBacking[E]) TryEnqueue(p *E) bool {
	v := *p
	return b.backing.TryEnqueue(&v)
}

func (b *nikolaevBoundedBacking[E]) TryDequeue() (E, bool) {
	return b.backing.TryDequeue()
}

func (b *nikolaevBoundedBacking[E]) Cap() int { return b.backing.Cap() }

func (b *nikolaevBoundedBacking[E]) Drain() { b.backing.Drain() }
