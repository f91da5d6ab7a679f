// ABOUTME: Sentinel errors returned by seed selection and the line walk
// ABOUTME: Callers match them with errors.Is
package haiku

import "errors"

var (
	// ErrExhausted is returned when a seed draw or line walk hits its cap
	// without satisfying the syllable constraint.
	ErrExhausted = errors.New("haiku: generation exhausted")

	// ErrInvalidTarget is returned for non-positive syllable targets.
	ErrInvalidTarget = errors.New("haiku: syllable target must be positive")

	// ErrSeedOverBudget is returned when a first-line seed alone exceeds the
	// line's target.
	ErrSeedOverBudget = errors.New("haiku: seed exceeds line target")
)
