package grille

// Enumerator is a lazy stateful cursor over the contiguous ordinal range
// [begin, end). It never allocates once constructed: CloneNext returns an
// owned copy (cheap, since Grille has no heap indirection) and BorrowNext
// returns a pointer into the enumerator's own cursor for allocation-free
// single-worker iteration.
type Enumerator struct {
	next           Grille
	preincremented bool
	begin          uint64
	nextOrdinal    uint64
	end            uint64
}

// NewEnumerator constructs an enumerator over the ordinal range [begin, end)
// for the given half-side.
func NewEnumerator(halfSide uint8, begin, end uint64) *Enumerator {
	return &Enumerator{
		next:           New(halfSide, begin),
		preincremented: true,
		begin:          begin,
		nextOrdinal:    begin,
		end:            end,
	}
}

// CloneNext returns an independent owned copy of the current grille and
// advances the cursor. The second return is false once the range is
// exhausted; exhaustion is sticky.
func (e *Enumerator) CloneNext() (Grille, bool) {
	if e.nextOrdinal >= e.end {
		return Grille{}, false
	}
	if !e.preincremented {
		e.next.Advance()
	}
	current := e.next
	e.next.Advance()
	e.preincremented = true
	e.nextOrdinal++
	return current, true
}

// BorrowNext returns a transient view of the current grille, valid only
// until the next call on this enumerator. The second return is false once
// the range is exhausted.
func (e *Enumerator) BorrowNext() (*Grille, bool) {
	if e.nextOrdinal >= e.end {
		return nil, false
	}
	if !e.preincremented {
		e.next.Advance()
	}
	e.preincremented = false
	e.nextOrdinal++
	return &e.next, true
}

// Completion returns the percentage of the range consumed so far.
func (e *Enumerator) Completion() float64 {
	total := e.end - e.begin
	if total == 0 {
		return 100
	}
	return float64(e.nextOrdinal-e.begin) / float64(total) * 100
}
