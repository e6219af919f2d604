// Package words implements a 26-ary trie over uppercase English letters,
// used to score a turning-grille candidate by how many dictionary words it
// contains as substrings.
package words

import (
	"bufio"
	"io"
	"strings"
)

type node struct {
	children [26]*node
	wordEnd  bool
}

func (n *node) child(c byte) *node {
	if c < 'A' || c > 'Z' {
		return nil
	}
	return n.children[c-'A']
}

func (n *node) getOrCreateChild(c byte) *node {
	i := c - 'A'
	if n.children[i] == nil {
		n.children[i] = &node{}
	}
	return n.children[i]
}

// Trie is a read-only-after-construction dictionary of uppercase words.
type Trie struct {
	root *node
}

// New builds a Trie from a sequence of uppercase words. Words containing
// characters outside A-Z are ignored.
func New(words []string) *Trie {
	t := &Trie{root: &node{}}
	for _, w := range words {
		t.addWord(w)
	}
	return t
}

// NewFromReader builds a Trie from a newline-delimited word list.
func NewFromReader(r io.Reader) (*Trie, error) {
	t := &Trie{root: &node{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		t.addWord(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Trie) addWord(word string) {
	n := t.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'A' || c > 'Z' {
			return
		}
		n = n.getOrCreateChild(c)
	}
	n.wordEnd = true
}

// CountWords scans text once, counting occurrences of dictionary words
// starting at every position simultaneously. It maintains a frontier of
// active trie-node pointers — one per still-matching start position — so
// the whole text is scanned in a single pass, with the work per character
// bounded by the length of the longest dictionary word.
func (t *Trie) CountWords(text string) int {
	active := make([]*node, 0, len(text)+1)
	active = append(active, t.root)
	next := make([]*node, 0, len(text)+1)

	count := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		next = next[:0]
		for _, n := range active {
			child := n.child(c)
			if child == nil {
				continue
			}
			if child.wordEnd {
				count++
			}
			next = append(next, child)
		}
		next = append(next, t.root)
		active, next = next, active
	}
	return count
}
