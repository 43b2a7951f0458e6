package vanity

import (
	"testing"

	"github.com/bastiangx/vanityserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var scenarioWords = []string{"cool", "bed", "bee", "amok", "add", "mann", "jade", "can", "ann"}

func newValidator(words ...string) *Validator {
	return NewValidator(dictionary.FromSlice(words))
}

func TestLetters(t *testing.T) {
	tests := []struct {
		digit    byte
		expected string
	}{
		{'0', ""},
		{'1', ""},
		{'2', "ABC"},
		{'3', "DEF"},
		{'4', "GHI"},
		{'5', "JKL"},
		{'6', "MNO"},
		{'7', "PQRS"},
		{'8', "TUV"},
		{'9', "WXYZ"},
		{'x', ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.digit), func(t *testing.T) {
			assert.Equal(t, tt.expected, Letters(tt.digit))
		})
	}
}

func TestDigit(t *testing.T) {
	for d := byte('2'); d <= '9'; d++ {
		for _, c := range []byte(Letters(d)) {
			got, ok := Digit(c)
			require.True(t, ok)
			assert.Equal(t, d, got, "letter %c", c)
		}
	}
	_, ok := Digit('7')
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	v := newValidator("cat", "bat", "cool", "bed", "amok", "add")

	tests := []struct {
		description string
		run         string
		longest     int
		ok          bool
	}{
		{"single word", "COOL", 4, true},
		{"word then shorter word", "COOLBED", 4, true},
		{"shorter word then word", "BEDCOOL", 4, true},
		{"two equal words", "CATBAT", 3, true},
		{"three words are not allowed", "CATBATCAT", 0, false},
		{"prefix only", "COO", 0, false},
		{"word with junk", "COOLX", 0, false},
		{"empty run", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			longest, ok := v.Split(tt.run)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.longest, longest)
			assert.Equal(t, tt.ok, v.IsCompleteWord(tt.run))
		})
	}
}

func TestIsWordOrExtendable(t *testing.T) {
	v := newValidator("cat", "bat", "cool", "bed")

	tests := []struct {
		description string
		run         string
		expected    bool
	}{
		{"word", "CAT", true},
		{"word prefix", "CO", true},
		{"single letter prefix", "B", true},
		{"word then prefix of another", "COOLB", true},
		{"word then whole word", "COOLBED", true},
		{"word then nothing usable", "COOLX", false},
		{"nothing starts with it", "XCAT", false},
		{"two words then more", "CATBATC", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsWordOrExtendable(tt.run))
		})
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
	}{
		{"866COOLBED", []string{"COOLBED"}},
		{"86MANN5ADD", []string{"MANN", "ADD"}},
		{"CAT0BAT", []string{"CAT", "BAT"}},
		{"0110", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var got []string
			for run := range runs(tt.text) {
				got = append(got, run)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTrailingRun(t *testing.T) {
	assert.Equal(t, "COOL", trailingRun([]byte("866COOL")))
	assert.Equal(t, "", trailingRun([]byte("866COOL2")))
	assert.Equal(t, "", trailingRun(nil))
	assert.Equal(t, "AB", trailingRun([]byte("AB")))
}

func TestExpandKeepsLength(t *testing.T) {
	e := NewExpander(newValidator(scenarioWords...))

	count := 0
	for term := range e.Expand("8662665233") {
		count++
		assert.Len(t, term.Text, 10)
	}
	assert.Greater(t, count, 1)
}

func TestExpandEmptyDictionary(t *testing.T) {
	e := NewExpander(newValidator())

	var terms []Terminal
	for term := range e.Expand("2345") {
		terms = append(terms, term)
	}
	assert.Equal(t, []Terminal{{Text: "2345"}}, terms)
}

func TestExpandZeroOne(t *testing.T) {
	e := NewExpander(newValidator(scenarioWords...))

	var terms []Terminal
	for term := range e.Expand("1010") {
		terms = append(terms, term)
	}
	assert.Equal(t, []Terminal{{Text: "1010"}}, terms)
}

func TestExpandStopsEarly(t *testing.T) {
	e := NewExpander(newValidator(scenarioWords...))

	count := 0
	for range e.Expand("8662665233") {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestScore(t *testing.T) {
	s := NewScorer(newValidator(scenarioWords...))

	tests := []struct {
		description string
		term        Terminal
		expected    Score
	}{
		{"single word run", Terminal{"866COOL233", 4}, Score{4, 4, 4}},
		{"two word run", Terminal{"866COOLBED", 7}, Score{4, 7, 7}},
		{"two runs", Terminal{"86MANN5ADD", 7}, Score{4, 4, 7}},
		{"split picks longer half", Terminal{"866ANN5233", 3}, Score{3, 3, 3}},
		{"whole number", Terminal{"86MANNJADE", 8}, Score{4, 8, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			c, ok, err := s.Score(tt.term)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, c.Score)
			assert.Equal(t, tt.term.Text, c.Text)
		})
	}
}

func TestScoreDiscardsDigitsOnly(t *testing.T) {
	s := NewScorer(newValidator(scenarioWords...))

	_, ok, err := s.Score(Terminal{Text: "8662665233"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScoreInvariant(t *testing.T) {
	s := NewScorer(newValidator(scenarioWords...))

	tests := []struct {
		description string
		term        Terminal
	}{
		{"run is not a word", Terminal{"866COOLXYZ", 7}},
		{"letter count mismatch", Terminal{"866COOL233", 3}},
		{"letters counted without any run", Terminal{"8662665233", 2}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, ok, err := s.Score(tt.term)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvariant)
		})
	}
}

func TestScoreCompare(t *testing.T) {
	tests := []struct {
		description string
		a, b        Score
		expected    int
	}{
		{"equal", Score{4, 7, 7}, Score{4, 7, 7}, 0},
		{"substring wins first", Score{5, 1, 1}, Score{4, 9, 9}, 1},
		{"then continuous", Score{4, 4, 7}, Score{4, 7, 7}, -1},
		{"then letters", Score{4, 4, 7}, Score{4, 4, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.expected, tt.b.Compare(tt.a))
		})
	}
}

func TestSelector(t *testing.T) {
	offers := []Candidate{
		{"A", Score{3, 3, 3}},
		{"B", Score{4, 8, 8}},
		{"C", Score{3, 3, 6}},
		{"D", Score{4, 4, 4}},
		{"E", Score{4, 7, 7}},
	}

	s := NewSelector(3)
	for _, c := range offers {
		s.Offer(c)
		assert.LessOrEqual(t, s.Len(), 3)
	}

	got := s.Results()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "E", "D"}, []string{got[0].Text, got[1].Text, got[2].Text})

	// results are a snapshot, the selector keeps its candidates
	assert.Equal(t, 3, s.Len())
}

func TestSelectorCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		s := NewSelector(capacity)
		s.Offer(Candidate{"A", Score{3, 3, 3}})
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Results())
	}
}

func TestSelectorTiesOrderedByText(t *testing.T) {
	s := NewSelector(10)
	for _, text := range []string{"C", "A", "B"} {
		s.Offer(Candidate{text, Score{3, 3, 3}})
	}

	got := s.Results()
	assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Text, got[1].Text, got[2].Text})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1-866COOLBED", FormatNumber(1, "866COOLBED"))
	assert.Equal(t, "44-20CATS", FormatNumber(44, "20CATS"))
	assert.Equal(t, []string{}, Format(1, nil))
	assert.Equal(t, []string{"1-AB", "1-CD"}, Format(1, []Candidate{{Text: "AB"}, {Text: "CD"}}))
}
