package vanity

import (
	"cmp"
	"fmt"
)

// Score ranks a candidate. Fields compare in order, larger is better.
type Score struct {
	// Substring is the longest dictionary word validated inside any run.
	Substring int
	// Continuous is the length of the longest letter run.
	Continuous int
	// Letters is how many digits were replaced by letters.
	Letters int
}

// Compare returns -1, 0 or +1 as s ranks below, level with or above o.
func (s Score) Compare(o Score) int {
	if c := cmp.Compare(s.Substring, o.Substring); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Continuous, o.Continuous); c != 0 {
		return c
	}
	return cmp.Compare(s.Letters, o.Letters)
}

func (s Score) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.Substring, s.Continuous, s.Letters)
}

// Candidate is a validated spelling of a number with its score.
type Candidate struct {
	Text  string
	Score Score
}

// Scorer validates terminal expansions and scores the ones that hold words.
type Scorer struct {
	v *Validator
}

// NewScorer returns a scorer that validates with v.
func NewScorer(v *Validator) *Scorer {
	return &Scorer{v: v}
}

// Score turns t into a candidate. ok is false when t holds no letters,
// which is the only way a terminal is discarded. A run that is not a
// complete word, or a letter count that does not match t.Letters, means
// the expansion broke its own rules and yields an error wrapping ErrInvariant.
func (s *Scorer) Score(t Terminal) (c Candidate, ok bool, err error) {
	var score Score
	letters := 0
	for run := range runs(t.Text) {
		longest, valid := s.v.Split(run)
		if !valid {
			return Candidate{}, false, fmt.Errorf("%w: run %q of %q is not a complete word", ErrInvariant, run, t.Text)
		}
		score.Substring = max(score.Substring, longest)
		score.Continuous = max(score.Continuous, len(run))
		letters += len(run)
	}

	if letters != t.Letters {
		return Candidate{}, false, fmt.Errorf("%w: %q holds %d letters, expansion counted %d", ErrInvariant, t.Text, letters, t.Letters)
	}
	if letters == 0 {
		return Candidate{}, false, nil
	}

	score.Letters = letters
	return Candidate{Text: t.Text, Score: score}, true, nil
}
