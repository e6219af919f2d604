package queue

// boxedBacking adapts a queue of owning pointers into a NonBlockingQueue of
// values: the portion is boxed on enqueue and unboxed on dequeue. This is
// the pointer-indirect backing category — some algorithms store only a
// machine word per slot, so the value itself lives on the heap. On a failed
// enqueue the caller's slot was never vacated and the box is simply dropped
// for the collector to reclaim.
type boxedBacking[E any] struct {
	inner NonBlockingQueue[*E]
}

func newBoxedBacking[E any](inner NonBlockingQueue[*E]) *boxedBacking[E] {
	return &boxedBacking[E]{inner: inner}
}

func (b *boxedBacking[E]) TryEnqueue(p *E) bool {
	boxed := new(E)
	*boxed = *p
	return b.inner.TryEnqueue(&boxed)
}

func (b *boxedBacking[E]) TryDequeue() (E, bool) {
	ptr, ok := b.inner.TryDequeue()
	if !ok {
		var zero E
		return zero, false
	}
	return *ptr, true
}
