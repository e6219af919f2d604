package queue

import "code.hybscloud.com/atomix"

// boundedSegment is the capability kFifo needs from each of its buckets.
type boundedSegment[E any] interface {
	TryEnqueue(p *E) bool
	TryDequeue() (E, bool)
}

// kFifo is a k-FIFO queue (Kirsch, Lippautz & Payer): a small number of
// independent buckets selected round-robin, trading strict FIFO
// ordering for less cross-core contention than a single queue. k=1
// degenerates to a single bucket, which is exactly what the
// "kirsch_1fifo"/"kirsch_bounded_1fifo" variant names call for.
type kFifo[E any] struct {
	buckets  []boundedSegment[E]
	enqueueN atomix.Uint64
	dequeueN atomix.Uint64
}

func newKFifo[E any](k int, newBucket func() boundedSegment[E]) *kFifo[E] {
	buckets := make([]boundedSegment[E], k)
	for i := range buckets {
		buckets[i] = newBucket()
	}
	return &kFifo[E]{buckets: buckets}
}

func (k *kFifo[E]) TryEnqueue(p *E) bool {
	n := len(k.buckets)
	start := int(k.enqueueN.AddAcqRel(1)-1) % n
	for i := 0; i < n; i++ {
		if k.buckets[(start+i)%n].TryEnqueue(p) {
			return true
		}
	}
	return false
}

func (k *kFifo[E]) TryDequeue() (E, bool) {
	n := len(k.buckets)
	start := int(k.dequeueN.AddAcqRel(1)-1) % n
	for i := 0; i < n; i++ {
		if v, ok := k.buckets[(start+i)%n].TryDequeue(); ok {
			return v, true
		}
	}
	var zero E
	return zero, false
}
