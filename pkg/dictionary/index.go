/*
Package dictionary holds the word index used to validate vanity spellings,
and the loaders that fill it from word lists on disk.

Words are stored upper-cased in a Patricia trie so the two questions asked
during a search stay cheap:

	idx.Contains("COOL")  // exact membership
	idx.HasPrefix("CO")   // is "CO" the start of some word

Only words of MinWordLen to MaxWordLen letters are indexed. An Index is
filled once and is read-only afterwards, so one value can be shared by any
number of concurrent searches.
*/
package dictionary

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	// MinWordLen is the shortest word kept in the index.
	MinWordLen = 3
	// MaxWordLen is the longest word kept in the index.
	MaxWordLen = 10
)

// Index is an immutable set of uppercase dictionary words.
type Index struct {
	once    sync.Once
	trie    *patricia.Trie
	words   int
	skipped int
}

// NewIndex returns an empty index. Call Build to fill it.
func NewIndex() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// New builds an index from words in one step.
func New(words iter.Seq[string]) *Index {
	return NewIndex().Build(words)
}

// FromSlice builds an index from a word slice.
func FromSlice(words []string) *Index {
	return New(slices.Values(words))
}

// Build inserts every word whose length is within [MinWordLen, MaxWordLen].
// Only the first call fills the index; later calls are no-ops, and
// concurrent callers wait until the first one finishes.
func (idx *Index) Build(words iter.Seq[string]) *Index {
	idx.once.Do(func() {
		for w := range words {
			w = strings.ToUpper(strings.TrimSpace(w))
			if len(w) < MinWordLen || len(w) > MaxWordLen {
				idx.skipped++
				continue
			}
			if idx.trie.Insert(patricia.Prefix(w), struct{}{}) {
				idx.words++
			}
		}
		log.Debugf("Dictionary index built: %d words (%d skipped)", idx.words, idx.skipped)
	})
	return idx
}

// Contains reports whether s is an indexed word.
func (idx *Index) Contains(s string) bool {
	if len(s) < MinWordLen || len(s) > MaxWordLen {
		return false
	}
	return idx.trie.Match(patricia.Prefix(s))
}

// HasPrefix reports whether at least one indexed word starts with s.
// The empty prefix matches whenever the index holds any word.
func (idx *Index) HasPrefix(s string) bool {
	if s == "" {
		return idx.words > 0
	}
	if len(s) > MaxWordLen {
		return false
	}
	return idx.trie.MatchSubtree(patricia.Prefix(s))
}

// Len returns the number of distinct indexed words.
func (idx *Index) Len() int {
	return idx.words
}

var errStopWalk = errors.New("stop walk")

// Words yields every indexed word in trie order.
func (idx *Index) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = idx.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
			if !yield(string(p)) {
				return errStopWalk
			}
			return nil
		})
	}
}

// Stats returns index counters for diagnostics.
func (idx *Index) Stats() map[string]int {
	return map[string]int{
		"words":   idx.words,
		"skipped": idx.skipped,
	}
}
