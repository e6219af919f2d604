package cracker

import (
	"time"

	"code.hybscloud.com/silo/grille"
)

// SerialDriver applies every grille on the calling goroutine: the baseline
// every concurrent Driver is benchmarked against.
type SerialDriver struct{}

func NewSerialDriver() *SerialDriver { return &SerialDriver{} }

func (d *SerialDriver) BruteForce(ctx *Context) error {
	enum := grille.NewEnumerator(uint8(ctx.SideLength/2), 0, ctx.GrilleCount)
	for {
		g, ok := enum.BorrowNext()
		if !ok {
			return nil
		}
		count := ctx.ApplyGrille(g)
		ctx.RegisterOneAppliedGrill(d, count)
	}
}

func (d *SerialDriver) TryMilestone(ctx *Context, milestoneEnd time.Time, grilleCountSoFar uint64) {
	ctx.Milestone(milestoneEnd, grilleCountSoFar, "")
}

func (d *SerialDriver) MilestonesSummary() string { return "" }
