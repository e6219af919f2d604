// Package grille implements the turning-grille punch mask: its ordinal
// encoding, its rotation geometry, and the lazy enumerator that walks a
// contiguous slice of the ordinal space.
package grille

import "fmt"

// maxTags bounds the quadrant-tag array at a fixed size so a Grille is a
// flat, copyable value with no heap indirection — it has to survive being
// passed by value through every NonBlockingQueue backing, including the
// ones that require a true copy rather than a move. 32 tags cover half-side
// up to 5 (a 10x10 grille), far beyond any side length this cracker is run
// against in practice.
const maxTags = 32

// MaxHalfSide is the largest half-side New accepts.
const MaxHalfSide = 5

// Grille is a square punch mask of side 2*halfSide, stored as halfSide^2
// quadrant tags in {0,1,2,3}. Tag i occupies bits 2i..2i+1 of the grille's
// ordinal.
type Grille struct {
	halfSide uint8
	tags     [maxTags]uint8
}

// New constructs the grille at the given ordinal for the given half-side.
func New(halfSide uint8, ordinal uint64) Grille {
	if int(halfSide) > MaxHalfSide {
		panic(fmt.Sprintf("grille: half-side %d exceeds MaxHalfSide %d", halfSide, MaxHalfSide))
	}
	g := Grille{halfSide: halfSide}
	n := int(halfSide) * int(halfSide)
	for i := 0; i < n; i++ {
		g.tags[i] = uint8(ordinal & 0b11)
		ordinal >>= 2
	}
	return g
}

// HalfSide returns the grille's half-side.
func (g *Grille) HalfSide() uint8 {
	return g.halfSide
}

// Side returns the grille's full side length.
func (g *Grille) Side() int {
	return int(g.halfSide) * 2
}

// Advance mutates the receiver into the next ordinal: increment tag 0 with
// carry into tag 1, and so on, exactly mirroring the ordinal's own bits.
func (g *Grille) Advance() {
	n := int(g.halfSide) * int(g.halfSide)
	for i := 0; i < n; i++ {
		if g.tags[i] < 3 {
			g.tags[i]++
			return
		}
		g.tags[i] = 0
	}
}

// Ordinal reconstructs the 64-bit ordinal from the tag array.
func (g *Grille) Ordinal() uint64 {
	n := int(g.halfSide) * int(g.halfSide)
	var ord uint64
	for i := n - 1; i >= 0; i-- {
		ord = (ord << 2) | uint64(g.tags[i])
	}
	return ord
}

// Population returns 4^(halfSide^2), the total number of distinct grilles
// for the given half-side. Callers must keep halfSide small enough that
// the result fits in a uint64 (halfSide <= 4 is always safe).
func Population(halfSide uint8) uint64 {
	n := int(halfSide) * int(halfSide)
	pop := uint64(1)
	for i := 0; i < n; i++ {
		pop *= 4
	}
	return pop
}

// IsHole reports whether rotating the grille by rotation exposes (x, y) as
// a punched hole. x and y range over [0, 2*halfSide).
func (g *Grille) IsHole(x, y, rotation int) bool {
	side := int(g.halfSide) * 2

	var origX, origY int
	switch rotation {
	case 0:
		origX, origY = x, y
	case 1:
		origX, origY = y, side-1-x
	case 2:
		origX, origY = side-1-x, side-1-y
	case 3:
		origX, origY = side-1-y, x
	default:
		panic(fmt.Sprintf("grille: invalid rotation %d", rotation))
	}

	var quadrant uint8
	var holeX, holeY int
	h := int(g.halfSide)
	switch {
	case origX < h && origY < h:
		quadrant, holeX, holeY = 0, origX, origY
	case origX < h:
		quadrant, holeX, holeY = 3, side-1-origY, origX
	case origY < h:
		quadrant, holeX, holeY = 1, origY, side-1-origX
	default:
		quadrant, holeX, holeY = 2, side-1-origX, side-1-origY
	}

	return g.tags[holeX*h+holeY] == quadrant
}
