package queue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// vyukovRing is a bounded MPMC ring buffer using Dmitry Vyukov's per-slot
// sequence number algorithm: a slot's sequence number tells a racing
// producer or consumer whether it is the slot's rightful owner, giving
// lock-free, ABA-safe access with n physical slots for capacity n.
type vyukovRing[E any] struct {
	_          pad
	enqueuePos atomix.Uint64
	_          pad
	dequeuePos atomix.Uint64
	_          pad
	mask       uint64
	buffer     []vyukovCell[E]
}

type vyukovCell[E any] struct {
	seq  atomix.Uint64
	data E
	_    padShort
}

func newVyukovRing[E any](capacity int) *vyukovRing[E] {
	n := uint64(roundToPow2(capacity))
	r := &vyukovRing[E]{
		mask:   n - 1,
		buffer: make([]vyukovCell[E], n),
	}
	for i := uint64(0); i < n; i++ {
		r.buffer[i].seq.StoreRelaxed(i)
	}
	return r
}

func (r *vyukovRing[E]) TryEnqueue(p *E) bool {
	sw := spin.Wait{}
	for {
		pos := r.enqueuePos.LoadAcquire()
		cell := &r.buffer[pos&r.mask]
		seq := cell.seq.LoadAcquire()
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if r.enqueuePos.CompareAndSwapAcqRel(pos, pos+1) {
				cell.data = *p
				cell.seq.StoreRelease(pos + 1)
				return true
			}
		case diff < 0:
			return false
		default:
			sw.Once()
		}
	}
}

func (r *vyukovRing[E]) TryDequeue() (E, bool) {
	sw := spin.Wait{}
	for {
		pos := r.dequeuePos.LoadAcquire()
		cell := &r.buffer[pos&r.mask]
		seq := cell.seq.LoadAcquire()
		diff := int64(seq) - int64(pos+1)
		switch {
		case diff == 0:
			if r.dequeuePos.CompareAndSwapAcqRel(pos, pos+1) {
				v := cell.data
				var zero E
				cell.data = zero
				cell.seq.StoreRelease(pos + r.mask + 1)
				return v, true
			}
		case diff < 0:
			var zero E
			return zero, false
		default:
			sw.Once()
		}
	}
}

func (r *vyukovRing[E]) Cap() int { return int(r.mask + 1) }
