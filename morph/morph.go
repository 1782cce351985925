// Package morph reduces inflected Kazakh surface forms to dictionary
// lemmas by stripping nominal suffix chains.
//
// The package provides two API layers:
//
//   - Structured: Resolve returns a tagged Outcome (unchanged, stopword
//     or lemma), and Segment returns every valid Decomposition with the
//     full suffix breakdown.
//
//   - Convenience: Stem returns just the resulting form string, and
//     Stems is a batch wrapper.
//
// Analysis is a memoized depth-first search over the four suffix slots
// (case/predicate, possessive, plural, derivational, stripped in that
// order), validating vowel harmony and undoing the two regular
// phonological changes at morpheme boundaries: consonant voicing
// (кітабым -> кітап) and vowel elision (аузы -> ауыз). Every candidate
// stem is validated against the lemma dictionary; when nothing
// validates, the word is passed through unchanged rather than guessed
// at. Among competing analyses the one stripping the fewest suffixes
// wins, so dictionary words never lose material to a look-alike suffix.
//
// All resources live in an immutable Store. A Stemmer holds the current
// Store and swaps it atomically on Reload; calls in flight finish
// against the snapshot they started with. All methods are safe for
// concurrent use by multiple goroutines.
//
// Known limitations (v1.0):
//
//   - Nominal morphology only. Verb chains (-ған/-атын/-ып...) are not
//     stripped and resolve unchanged unless the form is itself a lemma.
//   - Outcomes are single-best. Homographs (алмасын: "his apple" vs
//     "let him not take") resolve to the nominal reading.
//   - Inflected forms of excluded proper nouns pass through via the
//     conservative fallback, not via the exclusion set itself.
//   - Input is expected tokenized; no hyphen or clitic splitting here.
//   - Cyrillic orthography only.
package morph

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/darkhanakh/pg-kazsearch/internal/kazcase"
)

// maxWordBytes caps per-word work. Longer inputs are passed through
// unchanged.
const maxWordBytes = 256

// OutcomeKind classifies a resolution result.
type OutcomeKind uint8

const (
	// KindUnchanged marks excluded, unanalyzable or out-of-dictionary
	// words; the input passes through as-is.
	KindUnchanged OutcomeKind = iota
	// KindStopword marks function words; indexers usually drop these.
	KindStopword
	// KindLemma marks a successful reduction to a dictionary lemma.
	KindLemma
)

var kindNames = [...]string{"unchanged", "stopword", "lemma"}

func (k OutcomeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("OutcomeKind(%d)", k)
}

// MarshalJSON encodes the kind as its string name.
func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its string name.
func (k *OutcomeKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range kindNames {
		if name == s {
			*k = OutcomeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", s)
}

// Outcome is the result of resolving one token. Form holds the lemma
// for KindLemma and the input as given otherwise.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	Form string      `json:"form"`
}

// Stemmer resolves surface forms against a dictionary Store.
type Stemmer struct {
	store atomic.Pointer[Store]
}

// New returns a Stemmer reading from st.
func New(st *Store) *Stemmer {
	if st == nil {
		panic("morph: New with nil store")
	}
	s := &Stemmer{}
	s.store.Store(st)
	return s
}

// Default returns a Stemmer over the embedded resources.
func Default() (*Stemmer, error) {
	st, err := DefaultStore()
	if err != nil {
		return nil, err
	}
	return New(st), nil
}

// Reload swaps the store atomically. Calls already in flight keep the
// snapshot they started with.
func (s *Stemmer) Reload(st *Store) {
	if st == nil {
		panic("morph: Reload with nil store")
	}
	s.store.Store(st)
}

// Snapshot returns the current store.
func (s *Stemmer) Snapshot() *Store {
	return s.store.Load()
}

// Resolve reduces one token. It never fails: anything it cannot analyze
// comes back as KindUnchanged with the input untouched.
//
// Order of authority: the exclusion set pins the token verbatim, the
// stopword set marks it a function word, a direct lemma hit wins (the
// zero-suffix analysis always beats any stripping under the
// fewest-suffixes rule), and only then is the suffix search consulted.
func (s *Stemmer) Resolve(word string) Outcome {
	st := s.store.Load()
	if word == "" || len(word) > maxWordBytes {
		return Outcome{Kind: KindUnchanged, Form: word}
	}
	w := kazcase.Fold(word)
	switch {
	case st.IsExcluded(w):
		return Outcome{Kind: KindUnchanged, Form: word}
	case st.IsStopword(w):
		return Outcome{Kind: KindStopword, Form: word}
	case st.IsLemma(w):
		return Outcome{Kind: KindLemma, Form: w}
	}
	ds := segment(st, w)
	if len(ds) == 0 {
		return Outcome{Kind: KindUnchanged, Form: word}
	}
	return Outcome{Kind: KindLemma, Form: pick(ds).Lemma}
}

// Stem returns Resolve(word).Form.
func (s *Stemmer) Stem(word string) string {
	return s.Resolve(word).Form
}

// Stems maps Stem over words.
func (s *Stemmer) Stems(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = s.Stem(w)
	}
	return out
}

// Segment returns every valid decomposition of word in deterministic
// order, including the trivial one when the word is itself a lemma.
// Stopwords are not consulted here; excluded words yield no analyses,
// and no analysis strips through an excluded base.
func (s *Stemmer) Segment(word string) []Decomposition {
	st := s.store.Load()
	if word == "" || len(word) > maxWordBytes {
		return nil
	}
	return segment(st, kazcase.Fold(word))
}
