package vanity

import (
	"slices"
	"strings"

	"github.com/emirpasic/gods/queues/priorityqueue"
)

// Selector keeps the best candidates offered to it, up to a fixed capacity.
// The queue head is the worst kept candidate, so eviction is one Dequeue.
type Selector struct {
	capacity int
	queue    *priorityqueue.Queue
}

// NewSelector returns a selector keeping at most capacity candidates.
// A capacity of zero or less keeps nothing.
func NewSelector(capacity int) *Selector {
	return &Selector{
		capacity: capacity,
		queue:    priorityqueue.NewWith(byScore),
	}
}

func byScore(a, b interface{}) int {
	return a.(Candidate).Score.Compare(b.(Candidate).Score)
}

// Offer adds c, then drops the worst candidate if over capacity.
func (s *Selector) Offer(c Candidate) {
	if s.capacity <= 0 {
		return
	}
	s.queue.Enqueue(c)
	if s.queue.Size() > s.capacity {
		s.queue.Dequeue()
	}
}

// Len returns the number of kept candidates.
func (s *Selector) Len() int {
	return s.queue.Size()
}

// Results returns the kept candidates best first. Equal scores are
// ordered by text so output is stable.
func (s *Selector) Results() []Candidate {
	values := s.queue.Values()
	out := make([]Candidate, 0, len(values))
	for _, v := range values {
		out = append(out, v.(Candidate))
	}
	slices.SortFunc(out, func(a, b Candidate) int {
		if c := b.Score.Compare(a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Text, b.Text)
	})
	return out
}
