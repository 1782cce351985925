// Package lexc extracts lemma stems from Apertium .lexc lexicon files.
//
// Only the subset of the format a dictionary export needs is handled:
// LEXICON section headers, `!` line comments, `%`-escaped characters and
// the `stem:continuation` entry form. Flag diacritics and morphotactic
// detail are ignored; callers want the surface stem to the left of the
// first unescaped colon.
package lexc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Parse reads a .lexc stream and returns the stems found in the named
// LEXICON sections, sorted and deduplicated.
func Parse(r io.Reader, lexicons []string) ([]string, error) {
	wanted := make(map[string]bool, len(lexicons))
	for _, name := range lexicons {
		wanted[name] = true
	}

	stems := make(map[string]struct{})
	current := ""

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := stripComment(sc.Text())
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if name, ok := strings.CutPrefix(text, "LEXICON"); ok {
			fields := strings.Fields(name)
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: LEXICON header without a name", line)
			}
			current = fields[0]
			continue
		}

		if !wanted[current] {
			continue
		}
		stem, ok := entryStem(text)
		if !ok {
			continue
		}
		if stem != "" {
			stems[stem] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lexc: %w", err)
	}

	out := make([]string, 0, len(stems))
	for stem := range stems {
		out = append(out, stem)
	}
	sort.Strings(out)
	return out, nil
}

// stripComment removes an unescaped `!` comment tail.
func stripComment(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%':
			i++ // skip the escaped byte
		case '!':
			return s[:i]
		}
	}
	return s
}

// entryStem returns the unescaped text before the first unescaped colon.
// Lines without a colon carry no surface form and are skipped.
func entryStem(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case ':':
			return strings.TrimSpace(b.String()), true
		default:
			b.WriteByte(s[i])
		}
	}
	return "", false
}
