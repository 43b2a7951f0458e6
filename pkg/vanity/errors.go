package vanity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a number that is not made of ASCII digits only.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariant marks a terminal candidate that broke a search invariant.
	// It always points at a bug, never at bad input.
	ErrInvariant = errors.New("search invariant violated")
)

// InvalidInputError reports the first offending character of a number.
type InvalidInputError struct {
	Number string
	Index  int
	Char   byte
}

func (e *InvalidInputError) Error() string {
	if e.Number == "" {
		return "invalid input: empty number"
	}
	return fmt.Sprintf("invalid input: %q has non-digit %q at index %d", e.Number, e.Char, e.Index)
}

// Is lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// validateDigits returns an *InvalidInputError for anything but ASCII digits.
func validateDigits(number string) error {
	if number == "" {
		return &InvalidInputError{Number: number}
	}
	for i := 0; i < len(number); i++ {
		if !isDigit(number[i]) {
			return &InvalidInputError{Number: number, Index: i, Char: number[i]}
		}
	}
	return nil
}
