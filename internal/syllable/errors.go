// ABOUTME: Error values for syllable lookups
// ABOUTME: LookupError wraps ErrLookupFailure and names the unresolved word
package syllable

import (
	"errors"
	"fmt"
)

// ErrLookupFailure is returned when a word is in none of the oracle's sources.
var ErrLookupFailure = errors.New("syllable: lookup failure")

// LookupError reports the word that could not be resolved.
type LookupError struct {
	Word string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("syllable: no syllable count for %q", e.Word)
}

// Unwrap lets errors.Is match ErrLookupFailure.
func (e *LookupError) Unwrap() error {
	return ErrLookupFailure
}
