// Package kazcase provides case folding for Kazakh Cyrillic text.
//
// Unlike the Latin Turkic alphabets, Kazakh Cyrillic has no irregular
// case pairs: the standard Unicode mappings are correct for the full
// alphabet including ә, ғ, қ, ң, ө, ұ, ү, һ and і. What real-world text
// does carry is NFD-decomposed й and ё left behind by OCR and legacy
// converters, so folding composes those pairs first.
//
// All functions are safe for concurrent use.
package kazcase

import "strings"

// Fold returns s in the canonical lookup form used by the dictionary:
// known decomposed sequences composed, then lowercased.
func Fold(s string) string {
	return strings.ToLower(ComposeNFC(s))
}
