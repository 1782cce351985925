// Command smoketest runs the stemmer over a directory of .txt corpus
// files and reports throughput and outcome counts. It exists to shake
// out panics and pathological slowdowns on real text before a
// dictionary release:
//
//	go run ./cmd/smoketest <corpus-dir>
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

const (
	chunkSize      = 4 << 20 // 4 MB per read chunk
	maxWorkers     = 4
	expectedArgs   = 2
	bytesToMBShift = 20
	topStems       = 20
)

type stats struct {
	mu           sync.Mutex
	filesScanned int
	totalBytes   int64
	words        int
	lemmas       int
	stopwords    int
	unchanged    int
	stemCounts   map[string]int
}

type fileState struct {
	totalBytes int64
	words      int
	lemmas     int
	stopwords  int
	unchanged  int
	stemCounts map[string]int
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}
	dirPath := os.Args[1]

	stemmer, err := morph.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	var filePaths []string
	err = filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	agg := &stats{stemCounts: make(map[string]int)}
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, path := range filePaths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			processFile(p, stemmer, agg)
		}(path)
	}
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", elapsed.Round(time.Millisecond))
	printStats(agg, elapsed)
}

func processFile(path string, stemmer *morph.Stemmer, agg *stats) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stat %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "START %s (%d MB)\n", path, info.Size()>>bytesToMBShift)
	fileStart := time.Now()

	state := &fileState{stemCounts: make(map[string]int)}

	buf := make([]byte, chunkSize)
	var leftover []byte
	for {
		n, err := f.Read(buf)
		if n > 0 {
			leftover = append(leftover, buf[:n]...)
			chunk := leftover

			if err == nil {
				if idx := bytes.LastIndexByte(chunk, '\n'); idx > 0 {
					leftover = make([]byte, len(chunk)-idx-1)
					copy(leftover, chunk[idx+1:])
					chunk = chunk[:idx+1]
				} else {
					leftover = chunk
					continue
				}
			} else {
				leftover = nil
			}

			state.processChunk(chunk, stemmer)
		}
		if err != nil {
			break
		}
	}
	if len(leftover) > 0 {
		state.processChunk(leftover, stemmer)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d MB processed)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond),
		state.totalBytes>>bytesToMBShift)

	mergeFileState(state, agg)
}

func (fs *fileState) processChunk(chunk []byte, stemmer *morph.Stemmer) {
	fs.totalBytes += int64(len(chunk))

	for _, word := range fields(string(chunk)) {
		fs.words++
		out := stemmer.Resolve(word)
		switch out.Kind {
		case morph.KindLemma:
			fs.lemmas++
			fs.stemCounts[out.Form]++
		case morph.KindStopword:
			fs.stopwords++
		default:
			fs.unchanged++
		}
	}
}

// fields splits on anything that is not a letter. Digits, punctuation
// and symbols all separate words; the stemmer itself handles case.
func fields(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func mergeFileState(fs *fileState, agg *stats) {
	agg.mu.Lock()
	defer agg.mu.Unlock()

	agg.filesScanned++
	agg.totalBytes += fs.totalBytes
	agg.words += fs.words
	agg.lemmas += fs.lemmas
	agg.stopwords += fs.stopwords
	agg.unchanged += fs.unchanged
	for stem, n := range fs.stemCounts {
		agg.stemCounts[stem] += n
	}
}

func printStats(agg *stats, elapsed time.Duration) {
	agg.mu.Lock()
	defer agg.mu.Unlock()

	fmt.Fprintf(os.Stderr, "Files scanned:   %d\n", agg.filesScanned)
	fmt.Fprintf(os.Stderr, "Bytes processed: %d MB\n", agg.totalBytes>>bytesToMBShift)
	fmt.Fprintf(os.Stderr, "Words resolved:  %d\n", agg.words)
	if agg.words > 0 {
		fmt.Fprintf(os.Stderr, "  lemma:     %d (%.1f%%)\n", agg.lemmas, pct(agg.lemmas, agg.words))
		fmt.Fprintf(os.Stderr, "  stopword:  %d (%.1f%%)\n", agg.stopwords, pct(agg.stopwords, agg.words))
		fmt.Fprintf(os.Stderr, "  unchanged: %d (%.1f%%)\n", agg.unchanged, pct(agg.unchanged, agg.words))
	}
	fmt.Fprintf(os.Stderr, "Distinct stems:  %d\n", len(agg.stemCounts))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(os.Stderr, "Throughput:      %.0f words/sec\n", float64(agg.words)/secs)
	}

	type stemFreq struct {
		stem string
		n    int
	}
	top := make([]stemFreq, 0, len(agg.stemCounts))
	for stem, n := range agg.stemCounts {
		top = append(top, stemFreq{stem, n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].n != top[j].n {
			return top[i].n > top[j].n
		}
		return top[i].stem < top[j].stem
	})
	if len(top) > topStems {
		top = top[:topStems]
	}
	fmt.Fprintf(os.Stderr, "\nTop stems:\n")
	for _, sf := range top {
		fmt.Fprintf(os.Stderr, "  %8d  %s\n", sf.n, sf.stem)
	}
}

func pct(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}
