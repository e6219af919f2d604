package queue

import (
	"testing"
)

func TestNewPortionQueueRejectsUnknownVariant(t *testing.T) {
	_, err := NewPortionQueue[int]("not_a_real_variant", 64)
	if err == nil {
		t.Fatal("expected an error for an unknown variant name")
	}
}

// TestAllVariantsRoundTrip instantiates every registered variant and drives
// it through the same produce/stop/drain lifecycle, the smoke test every
// named backing combination must pass regardless of its internal algorithm.
func TestAllVariantsRoundTrip(t *testing.T) {
	const (
		numProducers = 3
		numConsumers = 3
		perProducer  = 500
		maxSize      = 384
	)

	for _, name := range Variants {
		t.Run(name, func(t *testing.T) {
			q, err := NewPortionQueue[int](name, maxSize)
			if err != nil {
				t.Fatalf("NewPortionQueue(%q): %v", name, err)
			}

			got := runPortionQueueLifecycle(q, numProducers, numConsumers, perProducer)
			requireExactSet(t, got, numProducers*perProducer)
		})
	}
}
