// Command dictgen generates data/lemmas.txt from an Apertium .lexc
// lexicon export.
//
// Download apertium-kaz.kaz.lexc from the apertium-kaz project, then
// run from the project root:
//
//	go run ./cmd/dictgen -lexc apertium-kaz.kaz.lexc -lexicons Common
//
// Output: data/lemmas.txt (commit this file). Regenerate when a new
// lexicon export is available. Entries found in the exclusion list are
// removed so proper nouns never enter the lemma set.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/darkhanakh/pg-kazsearch/internal/kazcase"
	"github.com/darkhanakh/pg-kazsearch/internal/lexc"
)

const (
	defaultOutput     = "data/lemmas.txt"
	defaultExclusions = "data/exclusions.txt"
	defaultLexicons   = "Common"
	minLemmaRunes     = 2
)

func main() {
	lexcPath := flag.String("lexc", "", "path to the Apertium .lexc file")
	lexicons := flag.String("lexicons", defaultLexicons, "comma-separated LEXICON sections to extract")
	extra := flag.String("extra", "", "comma-separated extra wordlist files to merge")
	exclusionsPath := flag.String("exclusions", defaultExclusions, "exclusion list to subtract (empty to skip)")
	outputPath := flag.String("output", defaultOutput, "output path for lemmas.txt")
	flag.Parse()

	if *lexcPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: dictgen -lexc <file> [-lexicons A,B] [-extra list.txt] [-output <file>]\n")
		os.Exit(1)
	}

	f, err := os.Open(*lexcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: open lexc: %v\n", err)
		os.Exit(1)
	}

	stems, err := lexc.Parse(f, strings.Split(*lexicons, ","))
	closeErr := f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: parse lexc: %v\n", err)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "dictgen: close lexc: %v\n", closeErr)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "dictgen: %d raw stems from %s\n", len(stems), *lexicons)

	seen := make(map[string]struct{}, len(stems))
	var skipped int
	for _, stem := range stems {
		lemma := kazcase.Fold(stem)
		if !isAcceptable(lemma) {
			skipped++
			continue
		}
		seen[lemma] = struct{}{}
	}

	for _, path := range splitList(*extra) {
		n, err := mergeWordlist(path, seen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dictgen: merge %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "dictgen: merged %d entries from %s\n", n, path)
	}

	var excluded int
	if *exclusionsPath != "" {
		excluded, err = subtractWordlist(*exclusionsPath, seen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dictgen: exclusions %s: %v\n", *exclusionsPath, err)
			os.Exit(1)
		}
	}

	lemmas := make([]string, 0, len(seen))
	for lemma := range seen {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)

	out, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: create output: %v\n", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(out)
	for _, lemma := range lemmas {
		if _, err := fmt.Fprintln(w, lemma); err != nil {
			fmt.Fprintf(os.Stderr, "dictgen: write error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: flush error: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: close output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "dictgen: wrote %d lemmas to %s (%d filtered, %d excluded)\n",
		len(lemmas), *outputPath, skipped, excluded)
}

// isAcceptable keeps single-token lowercase Cyrillic lemmas of a usable
// length. Multiword expressions and Latin or mixed-script entries carry
// no value for a token-at-a-time stemmer.
func isAcceptable(lemma string) bool {
	if utf8.RuneCountInString(lemma) < minLemmaRunes {
		return false
	}
	for _, r := range lemma {
		if !unicode.Is(unicode.Cyrillic, r) {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// mergeWordlist adds the acceptable entries of a one-per-line file.
func mergeWordlist(path string, seen map[string]struct{}) (int, error) {
	entries, err := readWordlist(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		lemma := kazcase.Fold(e)
		if !isAcceptable(lemma) {
			continue
		}
		if _, dup := seen[lemma]; !dup {
			seen[lemma] = struct{}{}
			n++
		}
	}
	return n, nil
}

// subtractWordlist removes the file's entries from the set.
func subtractWordlist(path string, seen map[string]struct{}) (int, error) {
	entries, err := readWordlist(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		lemma := kazcase.Fold(e)
		if _, ok := seen[lemma]; ok {
			delete(seen, lemma)
			n++
		}
	}
	return n, nil
}

func readWordlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var entries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, sc.Err()
}
