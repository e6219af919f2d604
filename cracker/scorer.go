package cracker

import (
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/silo/grille"
)

// ApplyGrille punches g against the cipher text at each of its four
// rotations, scores both the resulting candidate and its reverse (the
// turning-grille method can be read in either direction), and returns the
// running count of grilles applied so far.
func (c *Context) ApplyGrille(g *grille.Grille) uint64 {
	buf := make([]byte, 0, len(c.cipherText))

	for rotation := 0; rotation < 4; rotation++ {
		for y := 0; y < c.SideLength; y++ {
			for x := 0; x < c.SideLength; x++ {
				if g.IsHole(x, y, rotation) {
					buf = append(buf, c.cipherText[y*c.SideLength+x])
				}
			}
		}
	}

	c.findWordsAndReport(string(buf))
	reverse(buf)
	c.findWordsAndReport(string(buf))

	return c.grilleCountSoFar.AddAcqRel(1)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// findWordsAndReport scores candidate against the dictionary and, if it
// meets minDetectedWordCount, records it in the mutex-guarded candidate
// set. A detected candidate is printed to stdout only when the run is
// verbose; stderr stays reserved for progress logging.
func (c *Context) findWordsAndReport(candidate string) {
	wordsFound := c.wordsTrie.CountWords(candidate)
	if wordsFound < minDetectedWordCount {
		return
	}

	c.candidatesMu.Lock()
	c.candidates[candidate] = struct{}{}
	c.candidatesMu.Unlock()

	if c.verbose {
		fmt.Fprintf(os.Stdout, "%d %s\n", wordsFound, candidate)
	}
}

// RegisterOneAppliedGrill samples a milestone every 0.1% of the search
// space, asking driver to act on it. The sample timestamp comes from the
// time-cache rather than a fresh time.Now() call, since this is invoked on
// every applied grille and only checked against the milestone stride —
// the cache's resolution is far finer than the gap between milestones.
func (c *Context) RegisterOneAppliedGrill(driver Driver, grilleCountSoFar uint64) {
	milestoneEvery := c.GrilleCount / 1000
	if milestoneEvery == 0 || grilleCountSoFar%milestoneEvery == 0 {
		driver.TryMilestone(c, c.timeCache.CachedTime(), grilleCountSoFar)
	}
}

// Milestone updates the best-seen throughput and returns the instantaneous
// grilles/second measured since the previous milestone. The second return
// is false when no time has elapsed (too small an interval to measure).
func (c *Context) Milestone(milestoneEnd time.Time, grilleCountSoFar uint64, milestoneDetailsStatus string) (uint64, bool) {
	elapsed := milestoneEnd.Sub(c.milestoneStart)
	if elapsed <= 0 {
		return 0, false
	}

	grilleCountForMilestone := grilleCountSoFar - c.grilleCountAtMilestoneStart
	grillesPerSecond := uint64(float64(grilleCountForMilestone) / elapsed.Seconds())
	if grillesPerSecond > c.bestGrillesPerSecond {
		c.bestGrillesPerSecond = grillesPerSecond
	}

	ev := c.log.Debug().
		Float64("percent_done", float64(grilleCountSoFar)*100/float64(c.GrilleCount)).
		Uint64("grilles_per_second", grillesPerSecond).
		Uint64("best_grilles_per_second", c.bestGrillesPerSecond)
	if milestoneDetailsStatus != "" {
		ev = ev.Str("status", milestoneDetailsStatus)
	}
	ev.Msg("milestone")

	c.milestoneStart = milestoneEnd
	c.grilleCountAtMilestoneStart = grilleCountSoFar

	return grillesPerSecond, true
}
