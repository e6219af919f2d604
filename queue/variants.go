package queue

// NewPortionQueue constructs the named queue variant at the given capacity.
// All but three of the fourteen recognized names are a BlownQueue
// parameterised with a distinct NonBlockingQueue backing; textbook,
// sync_bounded and onetbb_bounded are monolithic implementations that never
// touch a backing at all. syncless and serial are not queue variants — they
// select a whole driver with no shared queue — and are rejected here.
//
// Only nikolaev_bounded and vyukov report their hard power-of-two capacity
// to the BlownQueue, which rounds its maxSize up to match. Every other
// bounded core is wrapped uncapped: it is sized at or above maxSize purely
// as headroom for producers that passed the size gate concurrently, so the
// wrapper's capacity stays authoritative.
func NewPortionQueue[E any](name string, maxSize uint64) (PortionQueue[E], error) {
	switch name {
	case "textbook":
		return NewTextbookQueue[E](maxSize), nil
	case "sync_bounded":
		return NewSyncBoundedQueue[E](maxSize), nil
	case "onetbb_bounded":
		return NewOneTBBBoundedQueue[E](maxSize), nil

	case "concurrent":
		return NewBlownQueue[E](maxSize, uncap[E](newLFQCASBacking[E](int(maxSize)))), nil
	case "atomic":
		return NewBlownQueue[E](maxSize, uncap[E](newVyukovRing[E](int(maxSize)))), nil
	case "lockfree":
		return NewBlownQueue[E](maxSize, newBoxedBacking[E](newPooledMSQueue[*E](int(maxSize)))), nil
	case "onetbb", "michael_scott":
		return NewBlownQueue[E](maxSize, newMSQueue[E]()), nil
	case "ramalhete", "nikolaev":
		return NewBlownQueue[E](maxSize, uncap[E](newLFQFAABacking[E](int(maxSize)))), nil
	case "vyukov":
		return NewBlownQueue[E](maxSize, newVyukovRing[E](int(maxSize))), nil
	case "nikolaev_bounded":
		return NewBlownQueue[E](maxSize, newNikolaevBoundedBacking[E](int(maxSize))), nil

	case "kirsch_1fifo":
		return NewBlownQueue[E](maxSize, newKFifo[E](1, func() boundedSegment[E] {
			return newBoxedBacking[E](newMSQueue[*E]())
		})), nil
	case "kirsch_bounded_1fifo":
		return NewBlownQueue[E](maxSize, newKFifo[E](1, func() boundedSegment[E] {
			return newBoxedBacking[E](newPooledMSQueue[*E](int(maxSize)))
		})), nil

	default:
		return nil, errUnknownVariant(name)
	}
}

// Variants lists every name NewPortionQueue accepts, in the order the CLI
// help text presents them.
var Variants = []string{
	"concurrent", "atomic", "lockfree", "onetbb", "onetbb_bounded",
	"michael_scott", "ramalhete", "vyukov", "kirsch_1fifo",
	"kirsch_bounded_1fifo", "nikolaev", "nikolaev_bounded", "sync_bounded",
	"textbook",
}
