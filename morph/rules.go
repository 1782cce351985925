package morph

import (
	"encoding/json"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Slot identifies one position in the nominal suffix chain. Attachment
// order on the stem is Derivational < Plural < Possessive <
// CaseOrPredicate, so stripping works outside-in starting from
// SlotCaseOrPredicate.
type Slot uint8

const (
	SlotCaseOrPredicate Slot = iota
	SlotPossessive
	SlotPlural
	SlotDerivational

	numSlots = 4
)

var slotNames = map[string]Slot{
	"case_or_predicate": SlotCaseOrPredicate,
	"possessive":        SlotPossessive,
	"plural":            SlotPlural,
	"derivational":      SlotDerivational,
}

func (s Slot) String() string {
	switch s {
	case SlotCaseOrPredicate:
		return "CaseOrPredicate"
	case SlotPossessive:
		return "Possessive"
	case SlotPlural:
		return "Plural"
	case SlotDerivational:
		return "Derivational"
	default:
		return "Slot(?)"
	}
}

// shortTag is the compact form used in Decomposition.String.
func (s Slot) shortTag() string {
	switch s {
	case SlotCaseOrPredicate:
		return "Case"
	case SlotPossessive:
		return "Poss"
	case SlotPlural:
		return "Plur"
	case SlotDerivational:
		return "Der"
	default:
		return "?"
	}
}

// Harmony is the vowel-harmony class of a suffix, or of a stem's last
// harmony vowel. Kazakh suffixes alternate on a back/front axis only;
// invariable suffixes are neutral.
type Harmony uint8

const (
	HarmonyNeutral Harmony = iota
	HarmonyBack
	HarmonyFront
)

var harmonyNames = map[string]Harmony{
	"":        HarmonyNeutral,
	"neutral": HarmonyNeutral,
	"back":    HarmonyBack,
	"front":   HarmonyFront,
}

func (h Harmony) String() string {
	switch h {
	case HarmonyBack:
		return "back"
	case HarmonyFront:
		return "front"
	default:
		return "neutral"
	}
}

// Constraint names a contextual predicate a suffix imposes on the base
// that remains after it is removed. Predicates look only at the base, so
// the segmentation memo stays keyed on (tail, slot).
type Constraint uint8

const (
	ConstraintNone Constraint = iota
	// ConstraintAfterVowel: the base must end in a vowel
	// (accusative -ны/-ні).
	ConstraintAfterVowel
	// ConstraintAfterPossessive: the base must end in a possessive
	// person marker ы/і/м/ң (dative -а/-е).
	ConstraintAfterPossessive
	// ConstraintAfterThirdPerson: the base must end in the third-person
	// possessive vowel ы/і (accusative -н).
	ConstraintAfterThirdPerson
)

var constraintNames = map[string]Constraint{
	"":                   ConstraintNone,
	"after_vowel":        ConstraintAfterVowel,
	"after_possessive":   ConstraintAfterPossessive,
	"after_third_person": ConstraintAfterThirdPerson,
}

func (c Constraint) String() string {
	switch c {
	case ConstraintAfterVowel:
		return "after_vowel"
	case ConstraintAfterPossessive:
		return "after_possessive"
	case ConstraintAfterThirdPerson:
		return "after_third_person"
	default:
		return ""
	}
}

// Suffix is one stripping rule: a surface form bound to a slot together
// with its phonological classes.
type Suffix struct {
	Surface    string
	Slot       Slot
	Harmony    Harmony
	Constraint Constraint

	runeLen int
}

// VowelInitial reports whether the suffix surface starts with a vowel.
// Both phonological repairs are conditioned on this.
func (s Suffix) VowelInitial() bool {
	r, _ := utf8.DecodeRuneInString(s.Surface)
	return isVowel(r)
}

// suffixFile mirrors the suffixes.json resource layout.
type suffixFile struct {
	Slots []struct {
		Slot     string `json:"slot"`
		Suffixes []struct {
			Surface    string `json:"surface"`
			Harmony    string `json:"harmony"`
			Constraint string `json:"constraint,omitempty"`
		} `json:"suffixes"`
	} `json:"slots"`
}

// parseSuffixes decodes and validates the suffix table resource. Rules
// come back grouped by slot, longest surface first; within equal length,
// file order is preserved so candidate order is reproducible.
func parseSuffixes(raw []byte) ([numSlots][]Suffix, error) {
	var table [numSlots][]Suffix

	var file suffixFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return table, &ResourceError{Resource: "suffixes", Reason: "invalid JSON: " + err.Error()}
	}
	if len(file.Slots) == 0 {
		return table, &ResourceError{Resource: "suffixes", Reason: "no slot sections"}
	}

	seenSlot := make(map[Slot]bool, numSlots)
	for _, sec := range file.Slots {
		slot, ok := slotNames[sec.Slot]
		if !ok {
			return table, &ResourceError{Resource: "suffixes", Entry: sec.Slot, Reason: "unknown slot"}
		}
		if seenSlot[slot] {
			return table, &ResourceError{Resource: "suffixes", Entry: sec.Slot, Reason: "duplicate slot section"}
		}
		seenSlot[slot] = true

		seenSurface := make(map[string]bool, len(sec.Suffixes))
		for _, e := range sec.Suffixes {
			if e.Surface == "" {
				return table, &ResourceError{Resource: "suffixes", Entry: sec.Slot, Reason: "empty surface"}
			}
			for _, r := range e.Surface {
				if !unicode.Is(unicode.Cyrillic, r) || !unicode.IsLower(r) {
					return table, &ResourceError{Resource: "suffixes", Entry: e.Surface, Reason: "surface must be lowercase Cyrillic"}
				}
			}
			if seenSurface[e.Surface] {
				return table, &ResourceError{Resource: "suffixes", Entry: e.Surface, Reason: "duplicate surface in slot " + sec.Slot}
			}
			seenSurface[e.Surface] = true

			harmony, ok := harmonyNames[e.Harmony]
			if !ok {
				return table, &ResourceError{Resource: "suffixes", Entry: e.Surface, Reason: "unknown harmony " + e.Harmony}
			}
			constraint, ok := constraintNames[e.Constraint]
			if !ok {
				return table, &ResourceError{Resource: "suffixes", Entry: e.Surface, Reason: "unknown constraint " + e.Constraint}
			}

			table[slot] = append(table[slot], Suffix{
				Surface:    e.Surface,
				Slot:       slot,
				Harmony:    harmony,
				Constraint: constraint,
				runeLen:    utf8.RuneCountInString(e.Surface),
			})
		}
	}

	for slot := range table {
		rules := table[slot]
		sort.SliceStable(rules, func(i, j int) bool {
			return rules[i].runeLen > rules[j].runeLen
		})
	}
	return table, nil
}
