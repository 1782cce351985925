//go:build ignore

// e2e_stemmer exercises the stemmer end to end: resolution across every
// outcome kind, a paradigm sweep over inflected forms, segmentation
// invariants, reload under concurrent load, and hostile input. Writes
// structured results to data/e2e_stemmer.log.
// Run from the project root:
//
//	go run e2e/e2e_stemmer.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

// ---------- constants ----------

const (
	logPath      = "data/e2e_stemmer.log"
	maxDetailLen = 200
	concWorkers  = 8
	concIter     = 200
	separator    = "=========================================================="
)

// ---------- types ----------

type testResult struct {
	name     string
	module   string
	passed   bool
	duration time.Duration
	detail   string
}

type moduleReport struct {
	name     string
	tests    int
	passed   int
	failed   int
	duration time.Duration
}

// ---------- helpers ----------

func pass(module, name string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: true, duration: time.Since(start)}
}

func fail(module, name, detail string, start time.Time) testResult {
	return testResult{name: name, module: module, passed: false, duration: time.Since(start), detail: truncate(detail, maxDetailLen)}
}

func truncate(s string, maxRunes int) string {
	n := 0
	for i := range s {
		n++
		if n > maxRunes {
			return s[:i] + "..."
		}
	}
	return s
}

func safeRun(module, name string, fn func() testResult) (r testResult) {
	defer func() {
		if p := recover(); p != nil {
			r = fail(module, name, fmt.Sprintf("PANIC: %v", p), time.Now())
		}
	}()
	return fn()
}

// ---------- test suites ----------

func testResolution(st *morph.Stemmer) []testResult {
	const mod = "resolution"
	var results []testResult

	cases := []struct {
		name string
		word string
		kind morph.OutcomeKind
		form string
	}{
		{"direct_lemma", "алма", morph.KindLemma, "алма"},
		{"stopword", "және", morph.KindStopword, "және"},
		{"exclusion_keeps_case", "Алматы", morph.KindUnchanged, "Алматы"},
		{"inflected_exclusion_untouched", "Алматыда", morph.KindUnchanged, "Алматыда"},
		{"single_suffix", "алмалар", morph.KindLemma, "алма"},
		{"full_chain", "алмаларымыздағы", morph.KindLemma, "алма"},
		{"mutation_repair", "кітабым", morph.KindLemma, "кітап"},
		{"elision_repair", "аузы", morph.KindLemma, "ауыз"},
		{"overstrip_guard", "қысқа", morph.KindLemma, "қысқа"},
		{"out_of_dictionary", "компьютерлерді", morph.KindUnchanged, "компьютерлерді"},
		{"latin_passthrough", "hello", morph.KindUnchanged, "hello"},
		{"empty_input", "", morph.KindUnchanged, ""},
	}
	for _, c := range cases {
		c := c
		results = append(results, safeRun(mod, c.name, func() testResult {
			start := time.Now()
			got := st.Resolve(c.word)
			if got.Kind != c.kind || got.Form != c.form {
				return fail(mod, c.name,
					fmt.Sprintf("%q -> {%s %q}, want {%s %q}", c.word, got.Kind, got.Form, c.kind, c.form), start)
			}
			return pass(mod, c.name, start)
		}))
	}

	results = append(results, safeRun(mod, "stem_is_fixpoint", func() testResult {
		start := time.Now()
		for _, w := range []string{"алмалар", "кітабым", "сөздеріміздегі", "аузы"} {
			stem := st.Stem(w)
			if again := st.Stem(stem); again != stem {
				return fail(mod, "stem_is_fixpoint", fmt.Sprintf("Stem(%q)=%q, Stem(%q)=%q", w, stem, stem, again), start)
			}
		}
		return pass(mod, "stem_is_fixpoint", start)
	}))

	return results
}

// paradigms maps each lemma to handpicked inflected forms that should
// all resolve back to it.
var paradigms = map[string][]string{
	"бала":   {"балалар", "балада", "баладан", "балаға", "баланы", "балалардағы"},
	"мектеп": {"мектепте", "мектептен", "мектептер", "мектепке"},
	"кітап":  {"кітаптар", "кітапта", "кітапқа", "кітабым", "кітабы"},
	"сөз":    {"сөздер", "сөзде", "сөзден", "сөзім", "сөзі"},
	"ауыз":   {"аузы", "аузымыз", "аузында"},
	"орын":   {"орны", "орнымыз"},
	"қала":   {"қалада", "қалалардан", "қаланы"},
	"үй":     {"үйде", "үйлер", "үйі"},
	"су":     {"суда", "сулар"},
	"дос":    {"достар", "досым", "достарымыз"},
	"үлкен":  {"үлкенірек"},
	"оқушы":  {"оқушылар", "оқушымын", "оқушысы"},
}

func testParadigms(st *morph.Stemmer) []testResult {
	const mod = "paradigms"
	var results []testResult

	for lemma, forms := range paradigms {
		lemma, forms := lemma, forms
		results = append(results, safeRun(mod, lemma, func() testResult {
			start := time.Now()
			for _, form := range forms {
				got := st.Resolve(form)
				if got.Kind != morph.KindLemma || got.Form != lemma {
					return fail(mod, lemma,
						fmt.Sprintf("%q -> {%s %q}, want lemma %q", form, got.Kind, got.Form, lemma), start)
				}
			}
			return pass(mod, lemma, start)
		}))
	}
	return results
}

func testSegmentation(st *morph.Stemmer) []testResult {
	const mod = "segmentation"
	var results []testResult

	results = append(results, safeRun(mod, "lemma_lists_trivial_first", func() testResult {
		start := time.Now()
		ds := st.Segment("қысқа")
		if len(ds) == 0 {
			return fail(mod, "lemma_lists_trivial_first", "no decompositions for қысқа", start)
		}
		if ds[0].Lemma != "қысқа" || len(ds[0].Steps) != 0 {
			return fail(mod, "lemma_lists_trivial_first", fmt.Sprintf("first decomposition is %s", ds[0]), start)
		}
		return pass(mod, "lemma_lists_trivial_first", start)
	}))

	results = append(results, safeRun(mod, "deterministic", func() testResult {
		start := time.Now()
		first := fmt.Sprint(st.Segment("алмаларымыздағы"))
		for i := 0; i < 10; i++ {
			if again := fmt.Sprint(st.Segment("алмаларымыздағы")); again != first {
				return fail(mod, "deterministic", fmt.Sprintf("run %d differs: %s vs %s", i, again, first), start)
			}
		}
		return pass(mod, "deterministic", start)
	}))

	results = append(results, safeRun(mod, "residuals_are_lemmas", func() testResult {
		start := time.Now()
		snapshot := st.Snapshot()
		for _, w := range []string{"балалардағы", "кітабым", "сөздеріміздегі", "аузында"} {
			for _, d := range st.Segment(w) {
				if !snapshot.IsLemma(d.Lemma) {
					return fail(mod, "residuals_are_lemmas", fmt.Sprintf("%q yields non-lemma residual %q", w, d.Lemma), start)
				}
			}
		}
		return pass(mod, "residuals_are_lemmas", start)
	}))

	return results
}

func testReload(st *morph.Stemmer) []testResult {
	const mod = "reload"
	var results []testResult

	results = append(results, safeRun(mod, "resolve_during_reload", func() testResult {
		start := time.Now()
		var wg sync.WaitGroup
		errs := make(chan string, concWorkers)

		for w := 0; w < concWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < concIter; i++ {
					got := st.Resolve("алмалар")
					if got.Kind != morph.KindLemma || got.Form != "алма" {
						select {
						case errs <- fmt.Sprintf("iteration %d: got {%s %q}", i, got.Kind, got.Form):
						default:
						}
						return
					}
				}
			}()
		}
		for i := 0; i < concIter; i++ {
			store, err := morph.DefaultStore()
			if err != nil {
				return fail(mod, "resolve_during_reload", "reload store build failed: "+err.Error(), start)
			}
			st.Reload(store)
		}
		wg.Wait()
		close(errs)
		if msg, ok := <-errs; ok && msg != "" {
			return fail(mod, "resolve_during_reload", msg, start)
		}
		return pass(mod, "resolve_during_reload", start)
	}))

	return results
}

func testRobustness(st *morph.Stemmer) []testResult {
	const mod = "robustness"
	var results []testResult

	results = append(results, safeRun(mod, "oversize_word_untouched", func() testResult {
		start := time.Now()
		big := strings.Repeat("а", 4096)
		got := st.Resolve(big)
		if got.Kind != morph.KindUnchanged || got.Form != big {
			return fail(mod, "oversize_word_untouched", fmt.Sprintf("got {%s, %d bytes}", got.Kind, len(got.Form)), start)
		}
		return pass(mod, "oversize_word_untouched", start)
	}))

	results = append(results, safeRun(mod, "invalid_utf8_untouched", func() testResult {
		start := time.Now()
		bad := "алма\xff\xfe"
		got := st.Resolve(bad)
		if got.Form != bad || got.Kind == morph.KindLemma {
			return fail(mod, "invalid_utf8_untouched", fmt.Sprintf("got {%s %q}", got.Kind, got.Form), start)
		}
		return pass(mod, "invalid_utf8_untouched", start)
	}))

	results = append(results, safeRun(mod, "mixed_script_untouched", func() testResult {
		start := time.Now()
		got := st.Resolve("алмаlar")
		if got.Kind == morph.KindLemma {
			return fail(mod, "mixed_script_untouched", fmt.Sprintf("got {%s %q}", got.Kind, got.Form), start)
		}
		return pass(mod, "mixed_script_untouched", start)
	}))

	return results
}

// ---------- reporting ----------

func buildReports(results []testResult) []moduleReport {
	var order []string
	byModule := make(map[string]*moduleReport)
	for _, r := range results {
		rep, ok := byModule[r.module]
		if !ok {
			rep = &moduleReport{name: r.module}
			byModule[r.module] = rep
			order = append(order, r.module)
		}
		rep.tests++
		if r.passed {
			rep.passed++
		} else {
			rep.failed++
		}
		rep.duration += r.duration
	}
	reports := make([]moduleReport, len(order))
	for i, name := range order {
		reports[i] = *byModule[name]
	}
	return reports
}

func writeLog(path string, results []testResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "  STEMMER E2E %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintln(bw, separator)

	totalPassed, totalFailed := 0, 0
	var totalDuration time.Duration
	for _, r := range results {
		status := "PASS"
		if !r.passed {
			status = "FAIL"
			totalFailed++
		} else {
			totalPassed++
		}
		totalDuration += r.duration
		fmt.Fprintf(bw, "%s [%s] %s (%s)\n", status, r.module, r.name, r.duration.Round(time.Microsecond))
		if r.detail != "" {
			fmt.Fprintf(bw, "     %s\n", r.detail)
		}
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "  SUMMARY: %d tests | %d passed | %d failed | %s\n",
		len(results), totalPassed, totalFailed, totalDuration.Round(time.Microsecond))
	fmt.Fprintln(bw, separator)

	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(results []testResult) {
	reports := buildReports(results)
	totalPassed, totalFailed := 0, 0

	for _, rep := range reports {
		totalPassed += rep.passed
		totalFailed += rep.failed

		status := "OK"
		if rep.failed > 0 {
			status = "FAIL"
		}
		log.Printf("  %-14s %d/%d %s", rep.name, rep.passed, rep.tests, status)
	}

	log.Printf("")
	log.Printf("  %d tests | %d passed | %d failed", len(results), totalPassed, totalFailed)

	for _, r := range results {
		if !r.passed {
			log.Printf("  FAIL [%s] %s: %s", r.module, r.name, r.detail)
		}
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[e2e] ")

	stemmer, err := morph.Default()
	if err != nil {
		log.Fatalf("cannot load stemmer: %v", err)
	}

	totalStart := time.Now()
	var results []testResult
	results = append(results, testResolution(stemmer)...)
	results = append(results, testParadigms(stemmer)...)
	results = append(results, testSegmentation(stemmer)...)
	results = append(results, testReload(stemmer)...)
	results = append(results, testRobustness(stemmer)...)
	log.Printf("completed in %s", time.Since(totalStart).Round(time.Microsecond))
	log.Printf("")

	printSummary(results)

	if err := writeLog(logPath, results); err != nil {
		log.Fatalf("cannot write log: %v", err)
	}
	log.Printf("log written to %s", logPath)

	for _, r := range results {
		if !r.passed {
			os.Exit(1)
		}
	}
}
