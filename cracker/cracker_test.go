package cracker_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"code.hybscloud.com/silo/cracker"
	"code.hybscloud.com/silo/grille"
	"code.hybscloud.com/silo/queue"
	"github.com/rs/zerolog"
)

// writeDictionary writes words, one per line, to a temp file and returns
// its path, so tests can hand NewContextWithDictionary a tiny fixture
// instead of the full 3000-word list.
func writeDictionary(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create dictionary: %v", err)
	}
	defer f.Close()
	for _, w := range words {
		if _, err := io.WriteString(f, w+"\n"); err != nil {
			t.Fatalf("write dictionary: %v", err)
		}
	}
	return path
}

func newTestContext(t *testing.T, cipherText string, words ...string) *cracker.Context {
	t.Helper()
	dict := writeDictionary(t, words...)
	ctx, err := cracker.NewContextWithDictionary(cipherText, dict, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewContextWithDictionary: %v", err)
	}
	t.Cleanup(ctx.Close)
	return ctx
}

// TestTinyDeterminism: side 4 (grilleCount = 256), an empty dictionary,
// every driver completes with every grille applied and no candidates
// reported.
func TestTinyDeterminism(t *testing.T) {
	drivers := map[string]cracker.Driver{
		"serial":   cracker.NewSerialDriver(),
		"syncless": cracker.NewSynclessDriver(),
	}

	for name, driver := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(t, "ABCDEFGHIJKLMNOP")
			candidates, err := ctx.BruteForce(driver)
			if err != nil {
				t.Fatalf("BruteForce: %v", err)
			}
			if got := ctx.GrilleCountSoFar(); got != ctx.GrilleCount {
				t.Fatalf("GrilleCountSoFar() = %d, want %d", got, ctx.GrilleCount)
			}
			if len(candidates) != 0 {
				t.Fatalf("candidates = %v, want none", candidates)
			}
		})
	}
}

// TestProducerConsumerConservation runs the self-tuning driver over the
// same tiny search space and checks the conservation invariant.
func TestProducerConsumerConservation(t *testing.T) {
	ctx := newTestContext(t, "ABCDEFGHIJKLMNOP")

	q, err := queue.NewPortionQueue[grille.Grille]("textbook", 64)
	if err != nil {
		t.Fatalf("NewPortionQueue: %v", err)
	}
	driver := cracker.NewProducerConsumerDriver(1, 2, q)

	if _, err := ctx.BruteForce(driver); err != nil {
		t.Fatalf("BruteForce: %v", err)
	}
	if got := ctx.GrilleCountSoFar(); got != ctx.GrilleCount {
		t.Fatalf("GrilleCountSoFar() = %d, want %d", got, ctx.GrilleCount)
	}
}

// TestDriversAgreeOnCandidates: syncless, serial, and a producer/consumer
// driver all see the same cipher text and dictionary, and must report
// identical candidate sets regardless of how work was partitioned or
// scheduled.
func TestDriversAgreeOnCandidates(t *testing.T) {
	const cipherText = "ABCDEFGHIJKLMNOP"
	newDrivers := func() map[string]cracker.Driver {
		q, err := queue.NewPortionQueue[grille.Grille]("concurrent", 64)
		if err != nil {
			t.Fatalf("NewPortionQueue: %v", err)
		}
		return map[string]cracker.Driver{
			"serial":   cracker.NewSerialDriver(),
			"syncless": cracker.NewSynclessDriver(),
			"concurrent": cracker.NewProducerConsumerDriver(2, 2, q),
		}
	}

	var want map[string]struct{}
	for name, driver := range newDrivers() {
		ctx := newTestContext(t, cipherText, "AND", "THE", "FOR")
		got, err := ctx.BruteForce(driver)
		if err != nil {
			t.Fatalf("%s: BruteForce: %v", name, err)
		}
		if want == nil {
			want = got
			continue
		}
		if len(got) != len(want) {
			t.Fatalf("%s: candidate set size %d, want %d", name, len(got), len(want))
		}
		for c := range want {
			if _, ok := got[c]; !ok {
				t.Fatalf("%s: missing candidate %q every other driver reported", name, c)
			}
		}
	}
}

func TestNewContextRejectsNonSquareCipherText(t *testing.T) {
	dict := writeDictionary(t)
	if _, err := cracker.NewContextWithDictionary("ABC", dict, false, zerolog.Nop()); err == nil {
		t.Fatal("NewContextWithDictionary with non-square length: got nil error")
	}
}

func TestNewContextRejectsNonLetters(t *testing.T) {
	dict := writeDictionary(t)
	if _, err := cracker.NewContextWithDictionary("ABCD123456789012", dict, false, zerolog.Nop()); err == nil {
		t.Fatal("NewContextWithDictionary with digits: got nil error")
	}
}
