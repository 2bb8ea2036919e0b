package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"barber-prices/models"
)

// numberPattern matches an RSD figure: digit groups separated by "." or whitespace,
// or a plain run of digits, either optionally followed by a ",NN" fraction.
const numberPattern = `(\d{1,3}(?:[.\s\x{00A0}\x{202F}]\d{3})+(?:,\d+)?|\d+(?:,\d+)?)`

// maxAmount bounds a single price so category sums cannot overflow
const maxAmount = 1_000_000_000

// ErrInvalidAmount is wrapped by every amount normalization failure
var ErrInvalidAmount = errors.New("invalid amount")

// ParseError reports a price figure that matched a grammar but could not be converted
type ParseError struct {
	Source  string
	Service models.Service
	Text    string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s price %q for %s: %v", e.Service, e.Text, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseAmount normalizes a Serbian-formatted price into whole dinars.
// Thousands separators ("." or whitespace) are stripped and anything after the
// decimal comma is discarded, so "2.919,57" becomes 2919.
func ParseAmount(text string) (int, error) {
	whole, _, _ := strings.Cut(text, ",")

	var b strings.Builder
	for _, r := range whole {
		switch {
		case r == '.' || unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return 0, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidAmount, r, text)
		}
	}

	digits := b.String()
	if digits == "" {
		return 0, fmt.Errorf("%w: no digits in %q", ErrInvalidAmount, text)
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if value > maxAmount {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrInvalidAmount, value, maxAmount)
	}
	return value, nil
}
