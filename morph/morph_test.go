package morph

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func testStore(t testing.TB) *Store {
	t.Helper()
	st, err := DefaultStore()
	if err != nil {
		t.Fatalf("DefaultStore() failed: %v", err)
	}
	return st
}

func testStemmer(t testing.TB) *Stemmer {
	t.Helper()
	return New(testStore(t))
}

// ---------------------------------------------------------------------------
// Vowel classes and harmony
// ---------------------------------------------------------------------------

func TestIsVowel(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want bool
	}{
		// -- Back vowels --
		{"а", 'а', true},
		{"о", 'о', true},
		{"ұ", 'ұ', true},
		{"ы", 'ы', true},

		// -- Front vowels --
		{"ә", 'ә', true},
		{"е", 'е', true},
		{"ө", 'ө', true},
		{"ү", 'ү', true},
		{"і", 'і', true},

		// -- Neutral vowels --
		{"и", 'и', true},
		{"у", 'у', true},
		{"ё", 'ё', true},

		// -- Consonants --
		{"б", 'б', false},
		{"қ", 'қ', false},
		{"ң", 'ң', false},
		{"й", 'й', false},

		// -- Non-Kazakh --
		{"latin a", 'a', false},
		{"digit", '1', false},
		{"space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isVowel(tt.r); got != tt.want {
				t.Errorf("isVowel(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestBackFrontMutualExclusivity(t *testing.T) {
	for v := range backVowels {
		if frontVowels[v] {
			t.Errorf("vowel %q is both back and front", v)
		}
		if neutralVowels[v] {
			t.Errorf("vowel %q is both back and neutral", v)
		}
	}
	for v := range frontVowels {
		if neutralVowels[v] {
			t.Errorf("vowel %q is both front and neutral", v)
		}
	}
}

func TestStemHarmony(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want Harmony
	}{
		{"back алма", "алма", HarmonyBack},
		{"back қыс", "қыс", HarmonyBack},
		{"front сөз", "сөз", HarmonyFront},
		{"front үлкен", "үлкен", HarmonyFront},
		{"last vowel decides", "кітап", HarmonyBack},
		{"neutral only су", "су", HarmonyNeutral},
		{"neutral only ки", "ки", HarmonyNeutral},
		{"scan over neutral ауыл", "ауыл", HarmonyBack},
		{"no vowel", "стр", HarmonyNeutral},
		{"empty", "", HarmonyNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stemHarmony(tt.s); got != tt.want {
				t.Errorf("stemHarmony(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestIsPlausibleStem(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"алма", "алма", true},
		{"ат", "ат", true},
		{"су", "су", true},
		{"single rune", "а", false},
		{"no vowel", "тр", false},
		{"empty", "", false},
		{"cluster only", "стрқ", false},
		{"three runes with vowel", "ауз", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlausibleStem(tt.s); got != tt.want {
				t.Errorf("isPlausibleStem(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Slot, Harmony, OutcomeKind String and JSON
// ---------------------------------------------------------------------------

func TestSlotString(t *testing.T) {
	tests := []struct {
		slot Slot
		want string
	}{
		{SlotCaseOrPredicate, "CaseOrPredicate"},
		{SlotPossessive, "Possessive"},
		{SlotPlural, "Plural"},
		{SlotDerivational, "Derivational"},
		{Slot(99), "Slot(?)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.slot.String(); got != tt.want {
				t.Errorf("Slot(%d).String() = %q, want %q", tt.slot, got, tt.want)
			}
		})
	}
}

func TestHarmonyString(t *testing.T) {
	tests := []struct {
		h    Harmony
		want string
	}{
		{HarmonyNeutral, "neutral"},
		{HarmonyBack, "back"},
		{HarmonyFront, "front"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.h.String(); got != tt.want {
				t.Errorf("Harmony(%d).String() = %q, want %q", tt.h, got, tt.want)
			}
		})
	}
}

func TestOutcomeKindJSON(t *testing.T) {
	for _, kind := range []OutcomeKind{KindUnchanged, KindStopword, KindLemma} {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := json.Marshal(kind)
			if err != nil {
				t.Fatalf("Marshal(%v) failed: %v", kind, err)
			}
			want := `"` + kind.String() + `"`
			if string(data) != want {
				t.Errorf("Marshal(%v) = %s, want %s", kind, data, want)
			}

			var got OutcomeKind
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", data, err)
			}
			if got != kind {
				t.Errorf("Unmarshal(%s) = %v, want %v", data, got, kind)
			}
		})
	}
}

func TestOutcomeKindJSONUnknown(t *testing.T) {
	var kind OutcomeKind
	err := json.Unmarshal([]byte(`"shouted"`), &kind)
	if err == nil {
		t.Fatal("expected error for unknown kind, got nil")
	}
	if !strings.Contains(err.Error(), "unknown outcome kind") {
		t.Errorf("expected 'unknown outcome kind' error, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	s := testStemmer(t)

	tests := []struct {
		name     string
		input    string
		wantKind OutcomeKind
		wantForm string
	}{
		// -- Degenerate input passes through --
		{"empty", "", KindUnchanged, ""},
		{"too long", strings.Repeat("a", 257), KindUnchanged, strings.Repeat("a", 257)},
		{"latin", "apple", KindUnchanged, "apple"},
		{"digits", "12345", KindUnchanged, "12345"},

		// -- Exclusion set pins proper nouns verbatim --
		{"excluded lowercase", "алматы", KindUnchanged, "алматы"},
		{"excluded capitalized", "Алматы", KindUnchanged, "Алматы"},
		{"excluded абай", "абай", KindUnchanged, "абай"},
		{"inflected exclusion falls through", "алматыда", KindUnchanged, "алматыда"},

		// -- Stopwords --
		{"stopword және", "және", KindStopword, "және"},
		{"stopword capitalized", "Бұл", KindStopword, "Бұл"},

		// -- Dictionary words stay put --
		{"bare алма", "алма", KindLemma, "алма"},
		{"bare сөз", "сөз", KindLemma, "сөз"},
		{"bare су", "су", KindLemma, "су"},
		{"overstrip guard қысқа", "қысқа", KindLemma, "қысқа"},
		{"overstrip guard capitalized", "Қысқа", KindLemma, "қысқа"},

		// -- Plural --
		{"plural алмалар", "алмалар", KindLemma, "алма"},
		{"plural сөздер", "сөздер", KindLemma, "сөз"},
		{"plural кітаптар", "кітаптар", KindLemma, "кітап"},
		{"plural күндер", "күндер", KindLemma, "күн"},

		// -- Possessive --
		{"poss алмам", "алмам", KindLemma, "алма"},
		{"poss басы", "басы", KindLemma, "бас"},
		{"poss аты", "аты", KindLemma, "ат"},
		{"poss көзім", "көзім", KindLemma, "көз"},
		{"poss досымыз", "досымыз", KindLemma, "дос"},

		// -- Case and predicate --
		{"locative мектепте", "мектепте", KindLemma, "мектеп"},
		{"dative үйге", "үйге", KindLemma, "үй"},
		{"dative қалаға", "қалаға", KindLemma, "қала"},
		{"accusative алманы", "алманы", KindLemma, "алма"},
		{"instrumental сумен", "сумен", KindLemma, "су"},
		{"predicate оқушымын", "оқушымын", KindLemma, "оқушы"},
		{"ownership баланікі", "баланікі", KindLemma, "бала"},

		// -- Consonant mutation reversal --
		{"mutation кітабым", "кітабым", KindLemma, "кітап"},
		{"mutation with case кітабымда", "кітабымда", KindLemma, "кітап"},

		// -- Vowel elision restoration --
		{"elision аузы", "аузы", KindLemma, "ауыз"},
		{"elision орны", "орны", KindLemma, "орын"},
		{"elision with case аузына", "аузына", KindLemma, "ауыз"},

		// -- Multi-suffix chains --
		{"full chain алмаларымыздағы", "алмаларымыздағы", KindLemma, "алма"},
		{"full chain сөздеріміздегі", "сөздеріміздегі", KindLemma, "сөз"},
		{"poss+acc алмасын", "алмасын", KindLemma, "алма"},
		{"poss+loc алмасындағы", "алмасындағы", KindLemma, "алма"},
		{"plural+poss+ins балаларымен", "балаларымен", KindLemma, "бала"},

		// -- Adjective degrees (derivational slot) --
		{"degree үлкенірек", "үлкенірек", KindLemma, "үлкен"},
		{"degree үлкендеу", "үлкендеу", KindLemma, "үлкен"},
		{"degree қысқалау", "қысқалау", KindLemma, "қысқа"},
		{"degree қысқарақ", "қысқарақ", KindLemma, "қысқа"},

		// -- Harmony violations never strip --
		{"harmony mismatch алмалер", "алмалер", KindUnchanged, "алмалер"},

		// -- Out of dictionary: conservative fallback --
		{"oov компьютерлерді", "компьютерлерді", KindUnchanged, "компьютерлерді"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Resolve(tt.input)
			if got.Kind != tt.wantKind || got.Form != tt.wantForm {
				t.Errorf("Resolve(%q) = {%v, %q}, want {%v, %q}",
					tt.input, got.Kind, got.Form, tt.wantKind, tt.wantForm)
			}
		})
	}
}

// TestStemFixpoint: stemming a stemmed lemma is a no-op.
func TestStemFixpoint(t *testing.T) {
	s := testStemmer(t)

	words := []string{
		"алмаларымыздағы", "сөздеріміздегі", "кітабым", "аузы", "орны",
		"мектепте", "қысқа", "үлкенірек", "балаларымен", "досымыз",
	}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			once := s.Stem(w)
			twice := s.Stem(once)
			if once != twice {
				t.Errorf("Stem(Stem(%q)): %q != %q", w, twice, once)
			}
		})
	}
}

// A word may sit in both the stopword and the lemma list; the stopword
// reading wins for the exact token, while inflected forms of the same
// word still stem to the lemma.
func TestStopwordLemmaOverlap(t *testing.T) {
	st, err := LoadStore(RawResources{
		Lemmas:     []byte("су\nалма\n"),
		Stopwords:  []byte("су\n"),
		Exclusions: []byte("алматы\n"),
		Suffixes:   []byte(`{"slots":[{"slot":"plural","suffixes":[{"surface":"лар","harmony":"back"}]}]}`),
		Phonology:  []byte(`{"mutations":[{"voiced":"б","voiceless":"п"}],"elision":{"back_vowel":"ы","front_vowel":"і","min_stem_runes":3}}`),
	})
	if err != nil {
		t.Fatalf("LoadStore rejected a stopword/lemma overlap: %v", err)
	}
	s := New(st)

	if got := s.Resolve("су"); got.Kind != KindStopword || got.Form != "су" {
		t.Errorf("Resolve(су) = {%s %q}, want {stopword су}", got.Kind, got.Form)
	}
	if got := s.Resolve("сулар"); got.Kind != KindLemma || got.Form != "су" {
		t.Errorf("Resolve(сулар) = {%s %q}, want {lemma су}", got.Kind, got.Form)
	}
}

func TestStems(t *testing.T) {
	s := testStemmer(t)

	got := s.Stems([]string{"алмалар", "және", "алматы", "xyzzy"})
	want := []string{"алма", "және", "алматы", "xyzzy"}
	if len(got) != len(want) {
		t.Fatalf("Stems returned %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stems[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Reload
// ---------------------------------------------------------------------------

func TestReload(t *testing.T) {
	s := testStemmer(t)
	if got := s.Stem("алмалар"); got != "алма" {
		t.Fatalf("Stem(алмалар) = %q before reload, want алма", got)
	}

	// A store that knows no suffixes: everything resolves unchanged.
	bare, err := LoadStore(RawResources{
		Lemmas:     []byte("алма\n"),
		Stopwords:  []byte("және\n"),
		Exclusions: []byte("алматы\n"),
		Suffixes:   []byte(`{"slots":[{"slot":"plural","suffixes":[{"surface":"лер","harmony":"front"}]}]}`),
		Phonology:  []byte(`{"mutations":[{"voiced":"б","voiceless":"п"}],"elision":{"back_vowel":"ы","front_vowel":"і","min_stem_runes":3}}`),
	})
	if err != nil {
		t.Fatalf("LoadStore failed: %v", err)
	}

	s.Reload(bare)
	if got := s.Stem("алмалар"); got != "алмалар" {
		t.Errorf("Stem(алмалар) = %q after reload, want unchanged", got)
	}
	if s.Snapshot() != bare {
		t.Error("Snapshot() does not return the reloaded store")
	}
}

// TestReloadConcurrent swaps stores while other goroutines resolve.
// Run with -race.
func TestReloadConcurrent(t *testing.T) {
	st := testStore(t)
	s := New(st)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if got := s.Stem("алмалар"); got != "алма" {
					t.Errorf("Stem(алмалар) = %q during reload", got)
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		s.Reload(st)
	}
	close(stop)
	wg.Wait()
}

// ---------------------------------------------------------------------------
// Examples
// ---------------------------------------------------------------------------

func ExampleStemmer_Stem() {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	fmt.Println(s.Stem("алмаларымыздағы"))
	fmt.Println(s.Stem("кітабым"))
	// Output:
	// алма
	// кітап
}

func ExampleStemmer_Resolve() {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	out := s.Resolve("және")
	fmt.Println(out.Kind, out.Form)
	// Output:
	// stopword және
}

// ---------------------------------------------------------------------------
// Benchmarks
// ---------------------------------------------------------------------------

func BenchmarkResolveShort(b *testing.B) {
	s := testStemmer(b)
	for i := 0; i < b.N; i++ {
		s.Resolve("алмалар")
	}
}

func BenchmarkResolveChain(b *testing.B) {
	s := testStemmer(b)
	for i := 0; i < b.N; i++ {
		s.Resolve("алмаларымыздағы")
	}
}

func BenchmarkResolveMiss(b *testing.B) {
	s := testStemmer(b)
	for i := 0; i < b.N; i++ {
		s.Resolve("компьютерлерді")
	}
}
