package vanity

import (
	"bytes"
	"iter"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Terminal is a fully expanded number: every position holds either its
// original digit or one of that digit's keypad letters.
type Terminal struct {
	Text    string
	Letters int
}

// node is one partial expansion. Positions at and after next still hold
// their original digit.
type node struct {
	text    []byte
	next    int
	letters int
}

// Expander walks every spelling of a number that the dictionary allows,
// breadth first, pruning a branch as soon as its letters can no longer
// become words.
type Expander struct {
	v *Validator
}

// NewExpander returns an expander that prunes with v.
func NewExpander(v *Validator) *Expander {
	return &Expander{v: v}
}

// Expand yields every terminal expansion of number in breadth-first order.
// number must hold ASCII digits only.
func (e *Expander) Expand(number string) iter.Seq[Terminal] {
	return func(yield func(Terminal) bool) {
		queue := linkedlistqueue.New()
		queue.Enqueue(node{text: []byte(number)})

		for !queue.Empty() {
			v, _ := queue.Dequeue()
			n := v.(node)
			if n.next == len(n.text) {
				if !yield(Terminal{Text: string(n.text), Letters: n.letters}) {
					return
				}
				continue
			}
			e.successors(n, queue)
		}
	}
}

// successors enqueues the admissible children of n: its keypad letters
// first, then the digit itself.
func (e *Expander) successors(n node, queue *linkedlistqueue.Queue) {
	i := n.next
	run := trailingRun(n.text[:i])
	last := i == len(n.text)-1

	for _, c := range []byte(Letters(n.text[i])) {
		word := run + string(c)
		var ok bool
		if last {
			ok = e.v.IsCompleteWord(word)
		} else {
			ok = e.v.IsWordOrExtendable(word)
		}
		if !ok {
			continue
		}
		text := bytes.Clone(n.text)
		text[i] = c
		queue.Enqueue(node{text: text, next: i + 1, letters: n.letters + 1})
	}

	if run == "" || e.v.IsCompleteWord(run) {
		// n is dropped after this call, so the digit child takes its buffer.
		queue.Enqueue(node{text: n.text, next: i + 1, letters: n.letters})
	}
}

// trailingRun returns the maximal block of letters that ends text.
func trailingRun(text []byte) string {
	start := len(text)
	for start > 0 && isLetter(text[start-1]) {
		start--
	}
	return string(text[start:])
}

// runs yields the maximal letter blocks of text, left to right.
func runs(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i <= len(text); i++ {
			if i < len(text) && isLetter(text[i]) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(text[start:i]) {
					return
				}
				start = -1
			}
		}
	}
}
