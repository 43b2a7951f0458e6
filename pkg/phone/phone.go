// Package phone splits dialed numbers into country code and national number.
package phone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no "+" prefix and the caller
// names no region.
const DefaultRegion = "US"

// ErrUnparsable is returned for input the phone number parser rejects.
var ErrUnparsable = errors.New("unparsable phone number")

// Number is a parsed phone number.
type Number struct {
	Raw         string
	CountryCode int
	// National is the national significant number as digits, without
	// leading zeros.
	National string
}

// E164 renders the number as "+<country code><national>".
func (n Number) E164() string {
	return "+" + strconv.Itoa(n.CountryCode) + n.National
}

// Parse reads raw as a phone number. Numbers without a "+" prefix are read
// as local to region, or to DefaultRegion when region is empty.
func Parse(raw, region string) (Number, error) {
	raw = strings.TrimSpace(raw)
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return Number{}, fmt.Errorf("%w %q: %v", ErrUnparsable, raw, err)
	}

	return Number{
		Raw:         raw,
		CountryCode: int(num.GetCountryCode()),
		National:    strconv.FormatUint(num.GetNationalNumber(), 10),
	}, nil
}
