package morph

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/darkhanakh/pg-kazsearch/data"
	"github.com/darkhanakh/pg-kazsearch/internal/kazcase"
)

// ResourceError describes the first rejected entry found while loading a
// dictionary resource.
type ResourceError struct {
	Resource string // "lemmas", "stopwords", "exclusions", "suffixes", "phonology"
	Line     int    // 1-based line for word lists, 0 for JSON resources
	Entry    string // offending entry, empty for structural problems
	Reason   string
}

func (e *ResourceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Resource)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Entry != "" {
		fmt.Fprintf(&b, ": %q", e.Entry)
	}
	return b.String()
}

// RawResources carries the five dictionary resources as raw file
// contents. Word lists are one entry per line with # comments; the
// suffix and phonology tables are JSON.
type RawResources struct {
	Lemmas     []byte
	Stopwords  []byte
	Exclusions []byte
	Suffixes   []byte
	Phonology  []byte
}

// Store is an immutable snapshot of the dictionary resources. All reads
// are lock-free; replacing resources means loading a new Store and
// handing it to Stemmer.Reload.
type Store struct {
	lemmas     map[string]struct{}
	stopwords  map[string]struct{}
	exclusions map[string]struct{}
	slots      [numSlots][]Suffix
	phon       phonTable
}

// LoadStore parses and validates the resources. It fails fast: the
// first malformed or duplicate entry aborts the load with a
// *ResourceError (wrapped), and no partially built Store escapes.
func LoadStore(res RawResources) (*Store, error) {
	st := &Store{}
	var err error

	if st.lemmas, err = parseWordList("lemmas", res.Lemmas); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	if st.stopwords, err = parseWordList("stopwords", res.Stopwords); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	if st.exclusions, err = parseWordList("exclusions", res.Exclusions); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	if st.slots, err = parseSuffixes(res.Suffixes); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	if st.phon, err = parsePhonology(res.Phonology); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	return st, nil
}

// DefaultStore builds a Store from the embedded resources.
func DefaultStore() (*Store, error) {
	return LoadStore(RawResources{
		Lemmas:     data.Lemmas,
		Stopwords:  data.Stopwords,
		Exclusions: data.Exclusions,
		Suffixes:   data.Suffixes,
		Phonology:  data.Phonology,
	})
}

// resourceFiles maps RawResources fields to their on-disk names.
var resourceFiles = []struct {
	name string
	dst  func(*RawResources) *[]byte
}{
	{"lemmas.txt", func(r *RawResources) *[]byte { return &r.Lemmas }},
	{"stopwords.txt", func(r *RawResources) *[]byte { return &r.Stopwords }},
	{"exclusions.txt", func(r *RawResources) *[]byte { return &r.Exclusions }},
	{"suffixes.json", func(r *RawResources) *[]byte { return &r.Suffixes }},
	{"phonology.json", func(r *RawResources) *[]byte { return &r.Phonology }},
}

// LoadDir builds a Store from a directory holding the five resource
// files under their conventional names (lemmas.txt, stopwords.txt,
// exclusions.txt, suffixes.json, phonology.json).
func LoadDir(dir string) (*Store, error) {
	var res RawResources
	for _, rf := range resourceFiles {
		b, err := os.ReadFile(filepath.Join(dir, rf.name))
		if err != nil {
			return nil, fmt.Errorf("load store: %w", err)
		}
		*rf.dst(&res) = b
	}
	return LoadStore(res)
}

// parseWordList reads a one-entry-per-line resource. Blank lines and
// #-comments are skipped. Entries must be single case-folded tokens;
// duplicates are load errors so that resource drift is caught at the
// source instead of silently shadowed.
func parseWordList(name string, raw []byte) (map[string]struct{}, error) {
	set := make(map[string]struct{}, 1024)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for sc.Scan() {
		line++
		entry := strings.TrimSpace(sc.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if strings.ContainsAny(entry, " \t") {
			return nil, &ResourceError{Resource: name, Line: line, Entry: entry, Reason: "entry contains whitespace"}
		}
		if folded := kazcase.Fold(entry); folded != entry {
			return nil, &ResourceError{Resource: name, Line: line, Entry: entry, Reason: "entry not case-folded"}
		}
		if _, dup := set[entry]; dup {
			return nil, &ResourceError{Resource: name, Line: line, Entry: entry, Reason: "duplicate entry"}
		}
		set[entry] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, &ResourceError{Resource: name, Reason: "read: " + err.Error()}
	}
	if len(set) == 0 {
		return nil, &ResourceError{Resource: name, Reason: "empty resource"}
	}
	return set, nil
}

// IsLemma reports whether w is a dictionary lemma.
func (st *Store) IsLemma(w string) bool {
	_, ok := st.lemmas[w]
	return ok
}

// IsStopword reports whether w is a function word.
func (st *Store) IsStopword(w string) bool {
	_, ok := st.stopwords[w]
	return ok
}

// IsExcluded reports whether w is pinned against any stripping.
func (st *Store) IsExcluded(w string) bool {
	_, ok := st.exclusions[w]
	return ok
}

// CandidatesFor returns the suffix rules of slot that match the end of
// tail, longest surface first, always leaving a non-empty base. The
// order is deterministic: length-sorted at load, file order within equal
// lengths.
func (st *Store) CandidatesFor(slot Slot, tail string) []Suffix {
	if int(slot) >= numSlots {
		return nil
	}
	var out []Suffix
	for _, suf := range st.slots[slot] {
		if len(suf.Surface) >= len(tail) {
			continue
		}
		if strings.HasSuffix(tail, suf.Surface) {
			out = append(out, suf)
		}
	}
	return out
}

// StoreStats are the resource sizes of a Store snapshot.
type StoreStats struct {
	Lemmas      int `json:"lemmas"`
	Stopwords   int `json:"stopwords"`
	Exclusions  int `json:"exclusions"`
	SuffixRules int `json:"suffix_rules"`
	Mutations   int `json:"mutations"`
}

// Stats returns the resource sizes.
func (st *Store) Stats() StoreStats {
	s := StoreStats{
		Lemmas:     len(st.lemmas),
		Stopwords:  len(st.stopwords),
		Exclusions: len(st.exclusions),
		Mutations:  len(st.phon.mutations),
	}
	for _, rules := range st.slots {
		s.SuffixRules += len(rules)
	}
	return s
}

// LemmaList returns the lemma set as a sorted slice.
func (st *Store) LemmaList() []string { return sortedKeys(st.lemmas) }

// StopwordList returns the stopword set as a sorted slice.
func (st *Store) StopwordList() []string { return sortedKeys(st.stopwords) }

// ExclusionList returns the exclusion set as a sorted slice.
func (st *Store) ExclusionList() []string { return sortedKeys(st.exclusions) }

// SuffixRules returns every suffix rule, slot-major in candidate order.
func (st *Store) SuffixRules() []Suffix {
	var out []Suffix
	for _, rules := range st.slots {
		out = append(out, rules...)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
