/*
Package vanity turns phone numbers into vanity numbers: spellings where
keypad digits are replaced by letters that form dictionary words.

	engine := vanity.NewEngine(idx)
	numbers, err := engine.Generate("8662665233", 1, 5)
	// ["1-86MANNJADE", "1-866AMOKADD", ...]

A search runs in three steps. The Expander walks digit positions breadth
first, trying each keypad letter and then the digit itself, and prunes a
branch as soon as its trailing letters cannot become a word. The Scorer
checks each finished spelling, requiring every letter run to be one word or
two words back to back, and scores it. The Selector keeps the best ones.

Digits 0 and 1 have no letters and always stay as they are. A spelling with
no letters is never a candidate.

An Engine only reads its Lexicon, so one Engine serves concurrent searches.
*/
package vanity

import (
	"fmt"
	"time"

	"github.com/bastiangx/vanityserve/pkg/phone"
	"github.com/charmbracelet/log"
)

// DefaultMaxResults is how many vanity numbers a search returns by default.
const DefaultMaxResults = 5

// Engine runs vanity searches against one dictionary.
type Engine struct {
	validator *Validator
	expander  *Expander
	scorer    *Scorer
}

// NewEngine returns an engine backed by lex.
func NewEngine(lex Lexicon) *Engine {
	v := NewValidator(lex)
	return &Engine{
		validator: v,
		expander:  NewExpander(v),
		scorer:    NewScorer(v),
	}
}

// Validator exposes the word checks the engine prunes with.
func (e *Engine) Validator() *Validator {
	return e.validator
}

// Search returns up to maxResults scored candidates for national, best first.
// national must be ASCII digits only; anything else yields an
// *InvalidInputError. maxResults of zero or less yields no candidates.
func (e *Engine) Search(national string, maxResults int) ([]Candidate, error) {
	if err := validateDigits(national); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return []Candidate{}, nil
	}

	start := time.Now()
	selector := NewSelector(maxResults)
	terminals := 0
	for t := range e.expander.Expand(national) {
		terminals++
		c, ok, err := e.scorer.Score(t)
		if err != nil {
			return nil, err
		}
		if ok {
			selector.Offer(c)
		}
	}

	results := selector.Results()
	log.Debugf("Searched %s: %d terminals, %d kept, took %v", national, terminals, len(results), time.Since(start))
	return results, nil
}

// Generate returns up to maxResults vanity numbers for national, formatted
// as "<countryCode>-<TEXT>", best first.
func (e *Engine) Generate(national string, countryCode, maxResults int) ([]string, error) {
	candidates, err := e.Search(national, maxResults)
	if err != nil {
		return nil, err
	}
	return Format(countryCode, candidates), nil
}

// GeneratePhone parses a dialed number and generates its vanity numbers.
func (e *Engine) GeneratePhone(raw, region string, maxResults int) ([]string, error) {
	num, err := phone.Parse(raw, region)
	if err != nil {
		return nil, err
	}
	numbers, err := e.Generate(num.National, num.CountryCode, maxResults)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", num.E164(), err)
	}
	return numbers, nil
}
