//go:build ignore

// evalstem scores the stemmer against a gold file of word/lemma pairs.
// Run from the project root:
//
//	go run scripts/evalstem.go [gold.tsv]
//
// Gold format: one case per line, "word<TAB>expected\n", where expected
// is the lemma the stemmer should return (for stopwords and untouchable
// words, the word itself). Blank lines and #-comments are skipped.
// The report groups failures by what went wrong, which is usually more
// useful than the raw accuracy number when tuning the suffix table.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

const defaultGoldPath = "data/gold/eval.tsv"

type goldCase struct {
	line     int
	word     string
	expected string
}

type failure struct {
	goldCase
	got  morph.Outcome
	kind string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[evalstem] ")

	goldPath := defaultGoldPath
	if len(os.Args) > 1 {
		goldPath = os.Args[1]
	}

	cases, err := loadGold(goldPath)
	if err != nil {
		log.Fatalf("cannot load gold file: %v", err)
	}
	log.Printf("loaded %d cases from %s", len(cases), goldPath)

	stemmer, err := morph.Default()
	if err != nil {
		log.Fatalf("cannot load stemmer: %v", err)
	}

	var failures []failure
	for _, c := range cases {
		got := stemmer.Resolve(c.word)
		if got.Form == c.expected {
			continue
		}
		failures = append(failures, failure{goldCase: c, got: got, kind: classify(c, got)})
	}

	total := len(cases)
	correct := total - len(failures)
	fmt.Printf("accuracy: %d/%d (%.1f%%)\n", correct, total, 100*float64(correct)/float64(total))
	if len(failures) == 0 {
		return
	}

	// Group failures so systematic problems stand out.
	byKind := make(map[string][]failure)
	for _, f := range failures {
		byKind[f.kind] = append(byKind[f.kind], f)
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return len(byKind[kinds[i]]) > len(byKind[kinds[j]]) })

	for _, k := range kinds {
		fs := byKind[k]
		fmt.Printf("\n%s (%d):\n", k, len(fs))
		for _, f := range fs {
			fmt.Printf("  line %d: %s -> %s (%s), want %s\n",
				f.line, f.word, f.got.Form, f.got.Kind, f.expected)
		}
	}
	os.Exit(1)
}

// classify names the failure mode. Over-stripping and under-stripping
// are separated because they are fixed in opposite ways: the former by
// tightening constraints, the latter by adding rules.
func classify(c goldCase, got morph.Outcome) string {
	switch {
	case got.Kind == morph.KindUnchanged && got.Form == c.word:
		return "under-stripped (no analysis found)"
	case len(got.Form) < len(c.expected):
		return "over-stripped"
	case len(got.Form) > len(c.expected):
		return "under-stripped (partial analysis)"
	default:
		return "wrong lemma"
	}
}

func loadGold(path string) ([]goldCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []goldCase
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, expected, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: want word<TAB>expected, got %q", path, line, text)
		}
		cases = append(cases, goldCase{line: line, word: strings.TrimSpace(word), expected: strings.TrimSpace(expected)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%s: no cases", path)
	}
	return cases, nil
}
