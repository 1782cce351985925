package morph

import (
	"reflect"
	"testing"
)

func fuzzSeeds(f *testing.F) {
	f.Add("алмаларымыздағы")
	f.Add("кітабым")
	f.Add("аузы")
	f.Add("қысқа")
	f.Add("және")
	f.Add("Алматы")
	f.Add("")
	f.Add("а")
	f.Add("apple")
	f.Add("\xff\xfe")
	f.Add("\x00")
	f.Add("алма\xffлар")
}

func FuzzResolve(f *testing.F) {
	s, err := Default()
	if err != nil {
		f.Fatalf("Default() failed: %v", err)
	}
	fuzzSeeds(f)

	f.Fuzz(func(t *testing.T, word string) {
		a := s.Resolve(word)
		b := s.Resolve(word)
		if a != b {
			t.Errorf("non-deterministic:\n  a = %v\n  b = %v", a, b)
		}
		switch a.Kind {
		case KindLemma:
			if !s.Snapshot().IsLemma(a.Form) {
				t.Errorf("Resolve(%q) = lemma %q not in dictionary", word, a.Form)
			}
		case KindUnchanged, KindStopword:
			if a.Form != word {
				t.Errorf("Resolve(%q) = {%v, %q}, form must be the input", word, a.Kind, a.Form)
			}
		default:
			t.Errorf("Resolve(%q) returned unknown kind %d", word, a.Kind)
		}
	})
}

func FuzzSegment(f *testing.F) {
	s, err := Default()
	if err != nil {
		f.Fatalf("Default() failed: %v", err)
	}
	fuzzSeeds(f)

	f.Fuzz(func(t *testing.T, word string) {
		a := s.Segment(word)
		b := s.Segment(word)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("non-deterministic:\n  a = %v\n  b = %v", a, b)
		}
		for _, d := range a {
			if len(d.Steps) > numSlots {
				t.Errorf("Segment(%q): %v strips %d suffixes, max %d", word, d, len(d.Steps), numSlots)
			}
			if !s.Snapshot().IsLemma(d.Lemma) {
				t.Errorf("Segment(%q): residual %q is not a lemma", word, d.Lemma)
			}
		}
	})
}
