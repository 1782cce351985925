// Command kazstem stems Kazakh word forms from the command line.
//
// Words are taken from the arguments, or from stdin (one token per
// line) when no arguments are given:
//
//	kazstem алмаларымыздағы кітабым
//	cat tokens.txt | kazstem -json
//
// Default output is tab-separated "word<TAB>stem" lines. -json dumps
// the full outcome, -segment dumps every decomposition the search
// found. -data loads the five resource files from a directory instead
// of the embedded defaults.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

func main() {
	jsonOut := flag.Bool("json", false, "print outcomes as JSON")
	segmentOut := flag.Bool("segment", false, "print every decomposition instead of the selected stem")
	dataDir := flag.String("data", "", "load resources from this directory instead of the embedded data")
	keepStopwords := flag.Bool("stopwords", false, "emit stopwords instead of dropping them")
	flag.Parse()

	stemmer, err := newStemmer(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kazstem: %v\n", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()

	emit := func(word string) {
		switch {
		case *segmentOut:
			printSegments(w, stemmer, word)
		case *jsonOut:
			printJSON(w, stemmer, word, *keepStopwords)
		default:
			printPlain(w, stemmer, word, *keepStopwords)
		}
	}

	if flag.NArg() > 0 {
		for _, word := range flag.Args() {
			emit(word)
		}
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		emit(word)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "kazstem: reading stdin: %v\n", err)
		os.Exit(1)
	}
}

// newStemmer builds the stemmer from the embedded resources, or from a
// resource directory holding the five dictionary files.
func newStemmer(dataDir string) (*morph.Stemmer, error) {
	if dataDir == "" {
		return morph.Default()
	}
	st, err := morph.LoadDir(dataDir)
	if err != nil {
		return nil, err
	}
	return morph.New(st), nil
}

func printPlain(w *bufio.Writer, s *morph.Stemmer, word string, keepStopwords bool) {
	out := s.Resolve(word)
	if out.Kind == morph.KindStopword && !keepStopwords {
		return
	}
	fmt.Fprintf(w, "%s\t%s\n", word, out.Form)
}

func printJSON(w *bufio.Writer, s *morph.Stemmer, word string, keepStopwords bool) {
	out := s.Resolve(word)
	if out.Kind == morph.KindStopword && !keepStopwords {
		return
	}
	enc, _ := json.Marshal(struct {
		Word string `json:"word"`
		morph.Outcome
	}{word, out})
	fmt.Fprintf(w, "%s\n", enc)
}

func printSegments(w *bufio.Writer, s *morph.Stemmer, word string) {
	ds := s.Segment(word)
	if len(ds) == 0 {
		fmt.Fprintf(w, "%s\t-\n", word)
		return
	}
	for _, d := range ds {
		fmt.Fprintf(w, "%s\t%s\n", word, d)
	}
}
