// Package cracker implements the turning-grille brute-force benchmark: a
// shared scoring context (Context) driven by one of three interchangeable
// strategies (Driver) — a tunable producer/consumer pipeline, a syncless
// partitioned sweep, and a single-threaded baseline.
package cracker

import (
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/silo/grille"
	"code.hybscloud.com/silo/internal/errs"
	"code.hybscloud.com/silo/words"
	"github.com/agilira/go-timecache"
	"github.com/rs/zerolog"
)

// wordsFilePath is the dictionary CountWords scores candidates against.
const wordsFilePath = "3000words.txt"

// minDetectedWordCount is the threshold a candidate's word count must meet
// to be reported. Determined empirically against the dictionary in use.
const minDetectedWordCount = 17

var notCapitalEnglishLetters = regexp.MustCompile(`[^A-Z]`)

// Driver supplies one brute-force strategy over a Context: how work is
// partitioned across goroutines, and how progress is sampled into
// milestones.
type Driver interface {
	BruteForce(ctx *Context) error
	TryMilestone(ctx *Context, milestoneEnd time.Time, grilleCountSoFar uint64)
	MilestonesSummary() string
}

// Context holds the single cipher text being cracked, the shared dictionary
// index, the mutex-guarded set of reported candidates, and the milestone
// bookkeeping every Driver samples into.
type Context struct {
	SideLength  int
	GrilleCount uint64

	cipherText string
	wordsTrie  *words.Trie
	log        zerolog.Logger
	verbose    bool
	timeCache  *timecache.TimeCache

	grilleCountSoFar atomix.Uint64

	candidatesMu sync.Mutex
	candidates   map[string]struct{}

	start                       time.Time
	milestoneStart              time.Time
	grilleCountAtMilestoneStart uint64
	bestGrillesPerSecond        uint64
}

// NewContext validates cipherText (English letters only, a square of an
// even side length) and loads the dictionary from wordsFilePath. verbose
// gates both per-milestone progress logging and stdout candidate reports,
// per the CLI's VERBOSE switch.
func NewContext(cipherText string, verbose bool, log zerolog.Logger) (*Context, error) {
	return NewContextWithDictionary(cipherText, wordsFilePath, verbose, log)
}

// NewContextWithDictionary is NewContext parameterised on the dictionary
// path, split out so tests can point it at a small fixture instead of the
// full word list.
func NewContextWithDictionary(cipherText, dictionaryPath string, verbose bool, log zerolog.Logger) (*Context, error) {
	upper := strings.ToUpper(cipherText)
	if notCapitalEnglishLetters.MatchString(upper) {
		return nil, errs.New(errs.Configuration, "the ciphertext must contain only English letters")
	}

	side := isqrt(len(upper))
	if side == 0 || side%2 != 0 || side*side != len(upper) {
		return nil, errs.New(errs.Configuration, "the ciphertext length must be a square of a positive even number")
	}
	if side/2 > grille.MaxHalfSide {
		return nil, errs.Newf(errs.Configuration, "the ciphertext side %d exceeds the largest supported side %d", side, grille.MaxHalfSide*2)
	}

	trie, err := loadWordsTrie(dictionaryPath)
	if err != nil {
		return nil, err
	}

	grilleCount := grille.Population(uint8(side / 2))

	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	return &Context{
		SideLength:  side,
		GrilleCount: grilleCount,
		cipherText:  upper,
		wordsTrie:   trie,
		log:         log,
		verbose:     verbose,
		timeCache:   timecache.NewWithResolution(time.Millisecond),
		candidates:  make(map[string]struct{}),
	}, nil
}

// Close releases the context's background time-cache refresher. Callers
// should defer it once BruteForce has returned.
func (c *Context) Close() {
	c.timeCache.Stop()
}

// GrilleCountSoFar returns the number of grilles applied so far, safe to
// read concurrently with ApplyGrille.
func (c *Context) GrilleCountSoFar() uint64 {
	return c.grilleCountSoFar.LoadAcquire()
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// BruteForce runs driver over the context's search space, timing the whole
// run, and returns the set of reported candidates. It is an Invariant
// violation for the driver to return having applied fewer grilles than
// GrilleCount.
func (c *Context) BruteForce(driver Driver) (map[string]struct{}, error) {
	c.start = time.Now()
	c.milestoneStart = c.start

	if err := driver.BruteForce(c); err != nil {
		return nil, err
	}

	elapsed := time.Since(c.start)
	var avgGrillesPerSecond uint64
	if elapsed > 0 {
		avgGrillesPerSecond = uint64(float64(c.GrilleCount) / elapsed.Seconds())
	}

	ev := c.log.Info().
		Uint64("avg_grilles_per_second", avgGrillesPerSecond).
		Uint64("best_grilles_per_second", c.bestGrillesPerSecond)
	if summary := driver.MilestonesSummary(); summary != "" {
		ev = ev.Str("summary", summary)
	}
	ev.Msg("brute force complete")

	if c.grilleCountSoFar.LoadAcquire() != c.GrilleCount {
		return nil, errs.Newf(errs.Invariant, "some grilles got lost: applied %d of %d",
			c.grilleCountSoFar.LoadAcquire(), c.GrilleCount)
	}

	return c.candidates, nil
}

func loadWordsTrie(path string) (*words.Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Newf(errs.Configuration, "cannot open dictionary %q: %v", path, err)
	}
	defer f.Close()

	trie, err := words.NewFromReader(f)
	if err != nil {
		return nil, errs.Newf(errs.Configuration, "cannot read dictionary %q: %v", path, err)
	}
	return trie, nil
}
