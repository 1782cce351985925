// Command corpusfreq builds a word-frequency priority list from a
// corpus directory. The list seeds dictionary curation: the most
// frequent unresolved forms are the first candidates for new lemmas or
// suffix rules.
//
//	go run ./cmd/corpusfreq -corpus data/corpus -o priority_list.txt
//
// Supported inputs: .txt, .json, .pdf, .docx. Output format: one
// "count word" line per token, sorted descending by count, with a `#`
// header comment. With -stems, counts are aggregated per resolved stem
// instead of per surface form.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/darkhanakh/pg-kazsearch/internal/corpus"
	"github.com/darkhanakh/pg-kazsearch/internal/kazcase"
	"github.com/darkhanakh/pg-kazsearch/morph"
)

const minFreq = 2

type freqEntry struct {
	word string
	freq int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[corpusfreq] ")

	corpusDir := flag.String("corpus", "", "corpus directory to walk")
	outputPath := flag.String("o", "priority_list.txt", "output path")
	aggregate := flag.Bool("stems", false, "aggregate counts by resolved stem")
	unresolvedOnly := flag.Bool("unresolved", false, "keep only words the stemmer passes through unchanged")
	flag.Parse()

	if *corpusDir == "" {
		log.Fatal("usage: corpusfreq -corpus <dir> [-o out.txt] [-stems] [-unresolved]")
	}

	stemmer, err := morph.Default()
	if err != nil {
		log.Fatalf("cannot load dictionary: %v", err)
	}
	registry := corpus.NewRegistry()
	ctx := context.Background()

	freq := make(map[string]int, 1<<16)
	files, tokens := 0, 0

	err = filepath.WalkDir(*corpusDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, perr := registry.ParserFor(path); perr != nil {
			return nil // not a corpus format
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		doc, perr := registry.ParseFile(ctx, path, f)
		cerr := f.Close()
		if perr != nil {
			log.Printf("skip %s: %v", path, perr)
			return nil
		}
		if cerr != nil {
			return fmt.Errorf("close %s: %w", path, cerr)
		}

		files++
		for _, word := range tokenize(doc.Content) {
			tokens++
			switch {
			case *aggregate:
				freq[stemmer.Stem(word)]++
			case *unresolvedOnly:
				if out := stemmer.Resolve(word); out.Kind == morph.KindUnchanged {
					freq[out.Form]++
				}
			default:
				freq[word]++
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("walking corpus: %v", err)
	}
	log.Printf("%d files, %d tokens, %d distinct entries", files, tokens, len(freq))

	entries := make([]freqEntry, 0, len(freq))
	for word, n := range freq {
		if n < minFreq {
			continue
		}
		entries = append(entries, freqEntry{word, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].freq != entries[j].freq {
			return entries[i].freq > entries[j].freq
		}
		return entries[i].word < entries[j].word
	})

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "# corpusfreq: %d files, %d tokens\n", files, tokens)
	for _, e := range entries {
		fmt.Fprintf(w, "%d %s\n", e.freq, e.word)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush output: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("close output: %v", err)
	}
	log.Printf("wrote %d entries to %s", len(entries), *outputPath)
}

// tokenize lowercases and splits on non-letters, keeping only Cyrillic
// tokens of two or more runes.
func tokenize(text string) []string {
	raw := strings.FieldsFunc(kazcase.Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	out := raw[:0]
	for _, w := range raw {
		if len([]rune(w)) < 2 {
			continue
		}
		cyrillic := true
		for _, r := range w {
			if !unicode.Is(unicode.Cyrillic, r) {
				cyrillic = false
				break
			}
		}
		if cyrillic {
			out = append(out, w)
		}
	}
	return out
}
