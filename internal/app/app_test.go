package app

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// setUpWorkDir populates a temp working directory with the three input
// files Run reads from the current directory, and chdirs into it.
func setUpWorkDir(t *testing.T, cipherText, clearText string, words string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		encryptedMsgPath: cipherText + "\n",
		decryptedMsgPath: clearText + "\n",
		"3000words.txt":  words,
	} {
		if err := os.WriteFile(dir+"/"+name, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}
	t.Chdir(dir)
}

// TestRunFailsWhenClearTextNotFound drives the whole pipeline end to end
// over a tiny side-4 search space: the files are read, every grille is
// applied, and the run exits 1 because the expected clear text is not among
// the candidates. Verbose is set so the CPU warm-up is skipped.
func TestRunFailsWhenClearTextNotFound(t *testing.T) {
	setUpWorkDir(t, "ABCDEFGHIJKLMNOP", "ATTACKATDAWN", "AND\nTHE\nFOR\n")

	code := Run(Config{Variant: "serial", Verbose: true}, zerolog.Nop())
	if code != 1 {
		t.Fatalf("Run = %d, want 1 (clear text cannot be among the candidates)", code)
	}
}

func TestRunFailsOnMalformedCipherText(t *testing.T) {
	setUpWorkDir(t, "ABC", "ATTACKATDAWN", "AND\n")

	code := Run(Config{Variant: "serial", Verbose: true}, zerolog.Nop())
	if code != 1 {
		t.Fatalf("Run = %d, want 1 (non-square cipher text)", code)
	}
}

func TestRunFailsOnMissingInputFile(t *testing.T) {
	t.Chdir(t.TempDir())

	code := Run(Config{Variant: "serial", Verbose: true}, zerolog.Nop())
	if code != 1 {
		t.Fatalf("Run = %d, want 1 (missing input files)", code)
	}
}
