package morph

import (
	"encoding/json"
	"unicode/utf8"
)

// Kazakh vowel classes. и, у and ё carry no harmony: in native words у/и
// spell glides, and all three occur freely in loans.
var backVowels = map[rune]bool{
	'а': true, 'о': true, 'ұ': true, 'ы': true,
}

var frontVowels = map[rune]bool{
	'ә': true, 'е': true, 'ө': true, 'ү': true, 'і': true,
}

var neutralVowels = map[rune]bool{
	'и': true, 'у': true, 'ё': true,
}

func isVowel(r rune) bool {
	return backVowels[r] || frontVowels[r] || neutralVowels[r]
}

func hasVowel(s string) bool {
	for _, r := range s {
		if isVowel(r) {
			return true
		}
	}
	return false
}

// stemHarmony returns the class of the last back/front vowel in s,
// scanning right to left over neutral vowels and consonants.
func stemHarmony(s string) Harmony {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		switch {
		case backVowels[r]:
			return HarmonyBack
		case frontVowels[r]:
			return HarmonyFront
		}
	}
	return HarmonyNeutral
}

// minStemRunes is the structural floor for any stem candidate: shorter
// bases (or vowelless ones) are never explored.
const minStemRunes = 2

func isPlausibleStem(s string) bool {
	if utf8.RuneCountInString(s) < minStemRunes {
		return false
	}
	return hasVowel(s)
}

// Mutation is one voiced/voiceless consonant pair from the phonology
// table. The voiced form appears stem-finally before vowel-initial
// suffixes; stripping restores the voiceless original.
type Mutation struct {
	Voiced    rune
	Voiceless rune
}

// phonTable is the parsed phonology resource.
type phonTable struct {
	mutations       []Mutation
	demutate        map[rune]rune
	elideBack       rune
	elideFront      rune
	minRestoreRunes int
}

// phonFile mirrors the phonology.json resource layout.
type phonFile struct {
	Mutations []struct {
		Voiced    string `json:"voiced"`
		Voiceless string `json:"voiceless"`
	} `json:"mutations"`
	Elision struct {
		BackVowel    string `json:"back_vowel"`
		FrontVowel   string `json:"front_vowel"`
		MinStemRunes int    `json:"min_stem_runes"`
	} `json:"elision"`
}

func parsePhonology(raw []byte) (phonTable, error) {
	var table phonTable

	var file phonFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return table, &ResourceError{Resource: "phonology", Reason: "invalid JSON: " + err.Error()}
	}
	if len(file.Mutations) == 0 {
		return table, &ResourceError{Resource: "phonology", Reason: "no mutation pairs"}
	}

	table.demutate = make(map[rune]rune, len(file.Mutations))
	for _, m := range file.Mutations {
		voiced, ok := singleRune(m.Voiced)
		if !ok {
			return table, &ResourceError{Resource: "phonology", Entry: m.Voiced, Reason: "mutation voiced form must be a single rune"}
		}
		voiceless, ok := singleRune(m.Voiceless)
		if !ok {
			return table, &ResourceError{Resource: "phonology", Entry: m.Voiceless, Reason: "mutation voiceless form must be a single rune"}
		}
		if _, dup := table.demutate[voiced]; dup {
			return table, &ResourceError{Resource: "phonology", Entry: m.Voiced, Reason: "duplicate mutation pair"}
		}
		table.demutate[voiced] = voiceless
		table.mutations = append(table.mutations, Mutation{Voiced: voiced, Voiceless: voiceless})
	}

	back, ok := singleRune(file.Elision.BackVowel)
	if !ok || !backVowels[back] {
		return table, &ResourceError{Resource: "phonology", Entry: file.Elision.BackVowel, Reason: "elision back_vowel must be a single back vowel"}
	}
	front, ok := singleRune(file.Elision.FrontVowel)
	if !ok || !frontVowels[front] {
		return table, &ResourceError{Resource: "phonology", Entry: file.Elision.FrontVowel, Reason: "elision front_vowel must be a single front vowel"}
	}
	if file.Elision.MinStemRunes < minStemRunes {
		return table, &ResourceError{Resource: "phonology", Reason: "elision min_stem_runes below structural floor"}
	}
	table.elideBack = back
	table.elideFront = front
	table.minRestoreRunes = file.Elision.MinStemRunes
	return table, nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}

// RepairKind tags how a stem variant was produced.
type RepairKind uint8

const (
	RepairNone RepairKind = iota
	RepairMutation
	RepairElision
)

func (k RepairKind) String() string {
	switch k {
	case RepairMutation:
		return "mutation"
	case RepairElision:
		return "elision"
	default:
		return "none"
	}
}

// Variant is one repaired stem candidate.
type Variant struct {
	Form string
	Kind RepairKind
}

// Repairs returns the repaired variants of stem given the suffix just
// removed, not including the identity variant. Both rewrites fire only
// when the removed suffix is vowel-initial; that is the environment that
// triggered the forward change. The result is never validated against
// the lemma set here — that is the segmentation engine's job.
func (st *Store) Repairs(stem string, suf Suffix) []Variant {
	if stem == "" || !suf.VowelInitial() {
		return nil
	}
	var out []Variant

	// Inverse consonant mutation: кітаб- back to кітап.
	last, size := utf8.DecodeLastRuneInString(stem)
	if orig, ok := st.phon.demutate[last]; ok {
		out = append(out, Variant{Form: stem[:len(stem)-size] + string(orig), Kind: RepairMutation})
	}

	// Elided vowel restoration: ауз- back to ауыз.
	if restored, ok := st.restoreElided(stem); ok {
		out = append(out, Variant{Form: restored, Kind: RepairElision})
	}
	return out
}

// restoreElided reinserts the historically dropped narrow vowel before
// the final consonant. The stem must end in a consonant cluster (glides
// у/и count as cluster members), and the vowel quality follows the
// stem's harmony: ы after back stems, і after front ones.
func (st *Store) restoreElided(stem string) (string, bool) {
	if utf8.RuneCountInString(stem) < st.phon.minRestoreRunes {
		return "", false
	}
	last, lastSize := utf8.DecodeLastRuneInString(stem)
	if isVowel(last) {
		return "", false
	}
	head := stem[:len(stem)-lastSize]
	prev, _ := utf8.DecodeLastRuneInString(head)
	if backVowels[prev] || frontVowels[prev] {
		return "", false
	}

	var v rune
	switch stemHarmony(head) {
	case HarmonyBack:
		v = st.phon.elideBack
	case HarmonyFront:
		v = st.phon.elideFront
	default:
		return "", false
	}
	return head + string(v) + string(last), true
}

// Mutations returns the mutation pairs in table order.
func (st *Store) Mutations() []Mutation {
	out := make([]Mutation, len(st.phon.mutations))
	copy(out, st.phon.mutations)
	return out
}

// ElisionVowels returns the restoration vowels for back and front stems.
func (st *Store) ElisionVowels() (back, front rune) {
	return st.phon.elideBack, st.phon.elideFront
}

// MinElisionRunes returns the shortest restored stem the elision repair
// may produce.
func (st *Store) MinElisionRunes() int { return st.phon.minRestoreRunes }
