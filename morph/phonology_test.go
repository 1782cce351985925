package morph

import (
	"testing"
	"unicode/utf8"
)

// vowelInitial is a convenience for building suffixes in tests; only the
// surface matters to Repairs.
func sfx(surface string) Suffix {
	return Suffix{Surface: surface, runeLen: utf8.RuneCountInString(surface)}
}

// ---------------------------------------------------------------------------
// Repairs
// ---------------------------------------------------------------------------

func TestRepairs(t *testing.T) {
	st := testStore(t)

	tests := []struct {
		name   string
		stem   string
		suffix Suffix
		want   []Variant
	}{
		{
			"mutation б to п",
			"кітаб", sfx("ым"),
			[]Variant{{Form: "кітап", Kind: RepairMutation}},
		},
		{
			"mutation ғ to қ",
			"қонағ", sfx("ы"),
			[]Variant{{Form: "қонақ", Kind: RepairMutation}},
		},
		{
			"mutation г to к",
			"жүрег", sfx("і"),
			[]Variant{{Form: "жүрек", Kind: RepairMutation}},
		},
		{
			"elision back stem",
			"ауз", sfx("ы"),
			[]Variant{{Form: "ауыз", Kind: RepairElision}},
		},
		{
			"elision after glide",
			"орн", sfx("ы"),
			[]Variant{{Form: "орын", Kind: RepairElision}},
		},
		{
			"elision front stem",
			"көрк", sfx("і"),
			[]Variant{{Form: "көрік", Kind: RepairElision}},
		},
		{
			"consonant-initial suffix never repairs",
			"кітаб", sfx("дар"),
			nil,
		},
		{
			"vowel-final stem never repairs",
			"алма", sfx("ы"),
			nil,
		},
		{
			"single vowel before final consonant blocks elision",
			"бас", sfx("ы"),
			nil,
		},
		{
			"stem below restore floor",
			"ст", sfx("ы"),
			nil,
		},
		{
			"plain consonant final has no repair",
			"мектеп", sfx("і"),
			// п is the voiceless member of its pair, so no demutation.
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := st.Repairs(tt.stem, tt.suffix)
			if len(got) != len(tt.want) {
				t.Fatalf("Repairs(%q, %q) = %v, want %v", tt.stem, tt.suffix.Surface, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Repairs(%q, %q)[%d] = %v, want %v",
						tt.stem, tt.suffix.Surface, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestRepairsAmbiguous: a voiced stop after a consonant cluster can be
// both a mutation site and an elision site; both variants come back for
// the search to try.
func TestRepairsAmbiguous(t *testing.T) {
	st := testStore(t)

	got := st.Repairs("қарб", sfx("ы"))
	if len(got) != 2 {
		t.Fatalf("Repairs(қарб, ы) = %v, want mutation and elision variants", got)
	}
	if got[0] != (Variant{Form: "қарп", Kind: RepairMutation}) {
		t.Errorf("first variant = %v, want mutation қарп", got[0])
	}
	if got[1] != (Variant{Form: "қарыб", Kind: RepairElision}) {
		t.Errorf("second variant = %v, want elision қарыб", got[1])
	}
}

func TestMutations(t *testing.T) {
	st := testStore(t)

	want := map[rune]rune{'б': 'п', 'ғ': 'қ', 'г': 'к'}
	ms := st.Mutations()
	if len(ms) != len(want) {
		t.Fatalf("Mutations() returned %d pairs, want %d", len(ms), len(want))
	}
	for _, m := range ms {
		if want[m.Voiced] != m.Voiceless {
			t.Errorf("unexpected mutation pair %q -> %q", m.Voiced, m.Voiceless)
		}
	}
}

func TestElisionVowels(t *testing.T) {
	st := testStore(t)

	back, front := st.ElisionVowels()
	if back != 'ы' || front != 'і' {
		t.Errorf("ElisionVowels() = %q, %q, want ы, і", back, front)
	}
}

// ---------------------------------------------------------------------------
// Round trip: undoing a suffix and re-attaching it reproduces the
// surface form for every decomposition the engine finds.
// ---------------------------------------------------------------------------

func TestPhonologicalRoundTrip(t *testing.T) {
	st := testStore(t)
	s := New(st)

	words := []string{
		"алмаларымыздағы", "сөздеріміздегі", "кітабым", "кітабымда",
		"аузы", "аузына", "орны", "қысқа", "кітапсыз", "балаларымен",
	}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			ds := s.Segment(w)
			if len(ds) == 0 {
				t.Fatalf("Segment(%q) found nothing", w)
			}
			for _, d := range ds {
				if got := synthesize(st, d); got != w {
					t.Errorf("synthesize(%v) = %q, want %q", d, got, w)
				}
			}
		})
	}
}

// synthesize re-attaches the stripped suffixes innermost-first, applying
// the forward sound changes the repairs undid.
func synthesize(st *Store, d Decomposition) string {
	voice := make(map[rune]rune)
	for _, m := range st.Mutations() {
		voice[m.Voiceless] = m.Voiced
	}

	stem := d.Lemma
	for i := len(d.Steps) - 1; i >= 0; i-- {
		step := d.Steps[i]
		switch step.Repair {
		case RepairMutation:
			last, size := utf8.DecodeLastRuneInString(stem)
			stem = stem[:len(stem)-size] + string(voice[last])
		case RepairElision:
			last, lastSize := utf8.DecodeLastRuneInString(stem)
			head := stem[:len(stem)-lastSize]
			_, vowelSize := utf8.DecodeLastRuneInString(head)
			stem = head[:len(head)-vowelSize] + string(last)
		}
		stem += step.Surface
	}
	return stem
}
