// ABOUTME: Package documentation for the Markov haiku generator
// ABOUTME: Summarizes the walk, its recovery branches and its caps

// Package haiku generates 5-7-5 verses by walking order-1 and order-2 Markov
// tables under an exact syllable budget.
//
// A line grows word by word from successors whose syllables still fit the
// budget. When the current prefix has no recorded successor the generator
// re-seeds from a random order-1 prefix (stuck recovery); when every
// successor overshoots it drops the last word and re-seeds (backtracking).
// An anchor too long for the budget is used for lookup only and never joins
// the line. Both loops are bounded by step and draw caps that surface as
// ErrExhausted.
//
// A Generator draws all randomness from one seeded source, so a run is a
// deterministic function of the seed, the corpus and the syllable counter.
package haiku
