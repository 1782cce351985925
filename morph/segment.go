package morph

import (
	"strings"
	"unicode/utf8"
)

// Step is one stripped suffix together with the repair applied to the
// base underneath it.
type Step struct {
	Surface string
	Slot    Slot
	Repair  RepairKind
}

// Decomposition is one complete analysis of a surface form: the lemma
// left after stripping plus the removed suffixes, outermost first. A
// lemma with no steps is the trivial decomposition of a dictionary word.
type Decomposition struct {
	Lemma string
	Steps []Step
}

// String renders a compact debug form, e.g.
// "алма[Case:дағы|Poss:ымыз|Plur:лар]"; a * marks a repaired base.
func (d Decomposition) String() string {
	if len(d.Steps) == 0 {
		return d.Lemma
	}
	var b strings.Builder
	b.WriteString(d.Lemma)
	b.WriteByte('[')
	for i, s := range d.Steps {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(s.Slot.shortTag())
		b.WriteByte(':')
		b.WriteString(s.Surface)
		if s.Repair != RepairNone {
			b.WriteByte('*')
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (d Decomposition) repairCount() int {
	n := 0
	for _, s := range d.Steps {
		if s.Repair != RepairNone {
			n++
		}
	}
	return n
}

// chain is a completion from some (tail, slot) point down to a lemma.
type chain struct {
	steps []Step
	lemma string
}

type segKey struct {
	tail string
	slot Slot
}

// segmenter runs one memoized depth-first search. The memo is sound
// because candidate admission looks only at the remaining base, never at
// the path above (see Constraint).
type segmenter struct {
	st   *Store
	memo map[segKey][]chain
}

// segment returns every valid decomposition of word, deterministically
// ordered: slot-major, longest suffix first, identity base before
// repaired variants. The chain is bounded at one strip per slot, so no
// analysis removes more than four suffixes.
func segment(st *Store, word string) []Decomposition {
	if st.IsExcluded(word) {
		return nil
	}
	if !isPlausibleStem(word) && !st.IsLemma(word) {
		return nil
	}
	s := &segmenter{st: st, memo: make(map[segKey][]chain)}
	chains := s.explore(word, SlotCaseOrPredicate)

	out := make([]Decomposition, 0, len(chains))
	seen := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		d := Decomposition{Lemma: c.lemma, Steps: c.steps}
		key := d.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

func (s *segmenter) explore(tail string, slot Slot) []chain {
	key := segKey{tail: tail, slot: slot}
	if cached, ok := s.memo[key]; ok {
		return cached
	}

	var out []chain
	if s.st.IsLemma(tail) {
		out = append(out, chain{lemma: tail})
	}

	for sl := slot; sl < numSlots; sl++ {
		for _, suf := range s.st.CandidatesFor(sl, tail) {
			base := strings.TrimSuffix(tail, suf.Surface)
			if !s.admits(base, suf) {
				continue
			}
			for _, v := range s.variants(base, suf) {
				// An excluded base is pinned: no chain may pass
				// through it to a lemma underneath.
				if s.st.IsExcluded(v.Form) {
					continue
				}
				for _, sub := range s.explore(v.Form, sl+1) {
					steps := make([]Step, 0, len(sub.steps)+1)
					steps = append(steps, Step{Surface: suf.Surface, Slot: sl, Repair: v.Kind})
					steps = append(steps, sub.steps...)
					out = append(out, chain{steps: steps, lemma: sub.lemma})
				}
			}
		}
	}

	s.memo[key] = out
	return out
}

// variants is the identity base followed by the phonological repairs.
func (s *segmenter) variants(base string, suf Suffix) []Variant {
	out := make([]Variant, 1, 3)
	out[0] = Variant{Form: base}
	return append(out, s.st.Repairs(base, suf)...)
}

// admits checks the structural floor, vowel harmony agreement and the
// suffix's contextual constraint against the remaining base. Harmony is
// enforced only when both sides carry a class; stems with only neutral
// vowels accept either alternant.
func (s *segmenter) admits(base string, suf Suffix) bool {
	if !isPlausibleStem(base) {
		return false
	}
	if suf.Harmony != HarmonyNeutral {
		if h := stemHarmony(base); h != HarmonyNeutral && h != suf.Harmony {
			return false
		}
	}
	switch suf.Constraint {
	case ConstraintAfterVowel:
		last, _ := utf8.DecodeLastRuneInString(base)
		return isVowel(last)
	case ConstraintAfterPossessive:
		last, _ := utf8.DecodeLastRuneInString(base)
		return last == 'ы' || last == 'і' || last == 'м' || last == 'ң'
	case ConstraintAfterThirdPerson:
		last, _ := utf8.DecodeLastRuneInString(base)
		return last == 'ы' || last == 'і'
	}
	return true
}
