package grille_test

import (
	"testing"

	"code.hybscloud.com/silo/grille"
)

func TestIsHoleTotality(t *testing.T) {
	const halfSide = 2
	g := grille.New(halfSide, 0xA5C3)
	side := int(halfSide) * 2

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			count := 0
			for r := 0; r < 4; r++ {
				if g.IsHole(x, y, r) {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("(x=%d,y=%d): got %d holes across rotations, want exactly 1", x, y, count)
			}
		}
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	const halfSide = 3
	for _, ord := range []uint64{0, 1, 17, 255, 1 << 17, grille.Population(halfSide) - 1} {
		g := grille.New(halfSide, ord)
		if got := g.Ordinal(); got != ord {
			t.Fatalf("ordinal round trip: New(%d).Ordinal() = %d, want %d", ord, got, ord)
		}
	}
}

func TestAdvanceMatchesOrdinalIncrement(t *testing.T) {
	const halfSide = 2
	g := grille.New(halfSide, 0)
	for ord := uint64(0); ord < grille.Population(halfSide)-1; ord++ {
		g.Advance()
		if got := g.Ordinal(); got != ord+1 {
			t.Fatalf("after %d Advance calls: Ordinal() = %d, want %d", ord+1, got, ord+1)
		}
	}
}

func TestPopulation(t *testing.T) {
	if got := grille.Population(2); got != 256 {
		t.Fatalf("Population(2) = %d, want 256", got)
	}
	if got := grille.Population(1); got != 4 {
		t.Fatalf("Population(1) = %d, want 4", got)
	}
}
