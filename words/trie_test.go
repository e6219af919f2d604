package words_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/silo/words"
)

func TestCountWordsFindsOverlappingSubstrings(t *testing.T) {
	trie := words.New([]string{"AT", "ATTACK", "DAWN", "TACK"})

	got := trie.CountWords("ATTACKATDAWN")
	// ATTACKATDAWN: AT@0, ATTACK@0, TACK@2, AT@6, DAWN@8 = 5
	if got != 5 {
		t.Fatalf("CountWords = %d, want 5", got)
	}
}

func TestCountWordsEmptyTrieFindsNothing(t *testing.T) {
	trie := words.New(nil)
	if got := trie.CountWords("ANYTHINGATALL"); got != 0 {
		t.Fatalf("CountWords with empty trie = %d, want 0", got)
	}
}

func TestCountWordsIgnoresNonLetterWords(t *testing.T) {
	trie := words.New([]string{"CAT", "123", "DOG"})
	if got := trie.CountWords("CATDOG"); got != 2 {
		t.Fatalf("CountWords = %d, want 2", got)
	}
}

func TestNewFromReader(t *testing.T) {
	trie, err := words.NewFromReader(strings.NewReader("cat\nDOG\n\nbird\n"))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if got := trie.CountWords("CATDOGBIRD"); got != 3 {
		t.Fatalf("CountWords = %d, want 3", got)
	}
}
