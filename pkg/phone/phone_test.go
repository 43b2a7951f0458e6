package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		raw         string
		region      string
		countryCode int
		national    string
	}{
		{"international with dashes", "+1-866-266-5233", "", 1, "8662665233"},
		{"local US number", "(866) 266-5233", "US", 1, "8662665233"},
		{"default region", "866 266 5233", "", 1, "8662665233"},
		{"lowercase region", "866 266 5233", "us", 1, "8662665233"},
		{"UK number", "+44 20 7946 0958", "", 44, "2079460958"},
		{"surrounding whitespace", "  +18662665233  ", "", 1, "8662665233"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			num, err := Parse(tt.raw, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.countryCode, num.CountryCode)
			assert.Equal(t, tt.national, num.National)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, raw := range []string{"", "hello", "+"} {
		_, err := Parse(raw, "")
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", raw)
	}
}

func TestE164(t *testing.T) {
	num, err := Parse("+1-866-266-5233", "")
	require.NoError(t, err)
	assert.Equal(t, "+18662665233", num.E164())
}
