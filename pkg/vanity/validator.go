package vanity

// Lexicon is the read-only word lookup a search needs.
// *dictionary.Index satisfies it.
type Lexicon interface {
	Contains(word string) bool
	HasPrefix(prefix string) bool
}

// Validator answers the word questions asked while expanding a number.
// A run is a maximal block of consecutive letters in a candidate.
type Validator struct {
	lex Lexicon
}

// NewValidator returns a validator backed by lex.
func NewValidator(lex Lexicon) *Validator {
	return &Validator{lex: lex}
}

// Split reports whether run is one word, or two words back to back.
// longest is the length of run when it is a word, otherwise the longer
// half of the first valid split found scanning the split point left to right.
func (v *Validator) Split(run string) (longest int, ok bool) {
	if v.lex.Contains(run) {
		return len(run), true
	}
	for k := 1; k < len(run); k++ {
		if v.lex.Contains(run[:k]) && v.lex.Contains(run[k:]) {
			return max(k, len(run)-k), true
		}
	}
	return 0, false
}

// IsCompleteWord reports whether run is a word or exactly two words.
func (v *Validator) IsCompleteWord(run string) bool {
	_, ok := v.Split(run)
	return ok
}

// IsWordOrExtendable reports whether run can still become a complete word:
// it is a word, a word prefix, or a word followed by a word prefix.
func (v *Validator) IsWordOrExtendable(run string) bool {
	if v.lex.Contains(run) || v.lex.HasPrefix(run) {
		return true
	}
	for k := 1; k < len(run); k++ {
		if v.lex.Contains(run[:k]) && v.lex.HasPrefix(run[k:]) {
			return true
		}
	}
	return false
}
