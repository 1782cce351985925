package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

// Repository reads and writes the dictionary tables. Sync is
// whole-resource replacement inside one transaction, matching the
// stemmer's snapshot reload model: readers either see the old tables or
// the new ones, never a mix.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(db *Database) *Repository {
	return &Repository{pool: db.Pool}
}

var wordTables = map[string]string{
	"lemmas":     "kaz_lemmas",
	"stopwords":  "kaz_stopwords",
	"exclusions": "kaz_exclusions",
}

func slotKey(s morph.Slot) string {
	switch s {
	case morph.SlotCaseOrPredicate:
		return "case_or_predicate"
	case morph.SlotPossessive:
		return "possessive"
	case morph.SlotPlural:
		return "plural"
	case morph.SlotDerivational:
		return "derivational"
	default:
		return ""
	}
}

var slotOrder = []morph.Slot{
	morph.SlotCaseOrPredicate,
	morph.SlotPossessive,
	morph.SlotPlural,
	morph.SlotDerivational,
}

type mutationRow struct {
	Voiced    string `json:"voiced"`
	Voiceless string `json:"voiceless"`
}

// SyncRun is one recorded synchronization of the dictionary tables.
type SyncRun struct {
	ID        uuid.UUID
	StartedAt time.Time
	Stats     morph.StoreStats
}

// SyncStore replaces every dictionary table with the contents of st
// and records the run. The whole swap is one transaction.
func (r *Repository) SyncStore(ctx context.Context, st *morph.Store) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback(ctx)

	lists := map[string][]string{
		"lemmas":     st.LemmaList(),
		"stopwords":  st.StopwordList(),
		"exclusions": st.ExclusionList(),
	}
	for kind, words := range lists {
		if err := replaceWordTable(ctx, tx, wordTables[kind], words); err != nil {
			return uuid.Nil, fmt.Errorf("sync %s: %w", kind, err)
		}
	}
	if err := replaceSuffixRules(ctx, tx, st.SuffixRules()); err != nil {
		return uuid.Nil, fmt.Errorf("sync suffix rules: %w", err)
	}
	if err := replacePhonology(ctx, tx, st); err != nil {
		return uuid.Nil, fmt.Errorf("sync phonology: %w", err)
	}

	run := SyncRun{ID: uuid.New(), Stats: st.Stats()}
	_, err = tx.Exec(ctx, `
		INSERT INTO kaz_sync_runs (id, lemmas, stopwords, exclusions, suffix_rules, mutations)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Stats.Lemmas, run.Stats.Stopwords, run.Stats.Exclusions,
		run.Stats.SuffixRules, run.Stats.Mutations)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record sync run: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit sync: %w", err)
	}
	return run.ID, nil
}

func replaceWordTable(ctx context.Context, tx pgx.Tx, table string, words []string) error {
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	rows := make([][]any, len(words))
	for i, w := range words {
		rows[i] = []any{w}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{table}, []string{"word"}, pgx.CopyFromRows(rows))
	return err
}

func replaceSuffixRules(ctx context.Context, tx pgx.Tx, rules []morph.Suffix) error {
	if _, err := tx.Exec(ctx, "DELETE FROM kaz_suffix_rules"); err != nil {
		return err
	}
	var rows [][]any
	pos := make(map[morph.Slot]int)
	for _, rule := range rules {
		rows = append(rows, []any{
			slotKey(rule.Slot), pos[rule.Slot], rule.Surface,
			rule.Harmony.String(), rule.Constraint.String(),
		})
		pos[rule.Slot]++
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"kaz_suffix_rules"},
		[]string{"slot", "position", "surface", "harmony", "constraint_name"},
		pgx.CopyFromRows(rows))
	return err
}

func replacePhonology(ctx context.Context, tx pgx.Tx, st *morph.Store) error {
	muts := st.Mutations()
	rows := make([]mutationRow, len(muts))
	for i, m := range muts {
		rows[i] = mutationRow{Voiced: string(m.Voiced), Voiceless: string(m.Voiceless)}
	}
	blob, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	back, front := st.ElisionVowels()
	_, err = tx.Exec(ctx, `
		INSERT INTO kaz_phonology (id, mutations, back_vowel, front_vowel, min_stem_runes)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			mutations = EXCLUDED.mutations,
			back_vowel = EXCLUDED.back_vowel,
			front_vowel = EXCLUDED.front_vowel,
			min_stem_runes = EXCLUDED.min_stem_runes`,
		blob, string(back), string(front), st.MinElisionRunes())
	return err
}

// WordList returns one word table sorted by Postgres, for exports such
// as a text search stopword file.
func (r *Repository) WordList(ctx context.Context, kind string) ([]string, error) {
	table, ok := wordTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown word list %q", kind)
	}
	rows, err := r.pool.Query(ctx, "SELECT word FROM "+table+" ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Counts reports the row count of every dictionary table.
func (r *Repository) Counts(ctx context.Context) (map[string]int64, error) {
	tables := []string{"kaz_lemmas", "kaz_stopwords", "kaz_exclusions", "kaz_suffix_rules", "kaz_sync_runs"}
	out := make(map[string]int64, len(tables))
	for _, table := range tables {
		var n int64
		if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

// LastSyncRun returns the most recent sync record, or nil when the
// tables have never been synced.
func (r *Repository) LastSyncRun(ctx context.Context) (*SyncRun, error) {
	var run SyncRun
	err := r.pool.QueryRow(ctx, `
		SELECT id, started_at, lemmas, stopwords, exclusions, suffix_rules, mutations
		FROM kaz_sync_runs ORDER BY started_at DESC LIMIT 1`).
		Scan(&run.ID, &run.StartedAt, &run.Stats.Lemmas, &run.Stats.Stopwords,
			&run.Stats.Exclusions, &run.Stats.SuffixRules, &run.Stats.Mutations)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last sync run: %w", err)
	}
	return &run, nil
}

// LoadResources rebuilds the five raw resources from the database, in
// the same formats morph.LoadStore parses. A store loaded this way goes
// through the full validation pass, so table corruption surfaces as a
// *morph.ResourceError instead of bad analyses.
func (r *Repository) LoadResources(ctx context.Context) (morph.RawResources, error) {
	var res morph.RawResources

	for kind, dst := range map[string]*[]byte{
		"lemmas":     &res.Lemmas,
		"stopwords":  &res.Stopwords,
		"exclusions": &res.Exclusions,
	} {
		words, err := r.WordList(ctx, kind)
		if err != nil {
			return res, err
		}
		*dst = []byte(strings.Join(words, "\n") + "\n")
	}

	suffixes, err := r.loadSuffixResource(ctx)
	if err != nil {
		return res, err
	}
	res.Suffixes = suffixes

	phonology, err := r.loadPhonologyResource(ctx)
	if err != nil {
		return res, err
	}
	res.Phonology = phonology
	return res, nil
}

type suffixEntry struct {
	Surface    string `json:"surface"`
	Harmony    string `json:"harmony"`
	Constraint string `json:"constraint,omitempty"`
}

func (r *Repository) loadSuffixResource(ctx context.Context) ([]byte, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT slot, surface, harmony, constraint_name
		FROM kaz_suffix_rules ORDER BY slot, position`)
	if err != nil {
		return nil, fmt.Errorf("load suffix rules: %w", err)
	}
	defer rows.Close()

	bySlot := make(map[string][]suffixEntry)
	for rows.Next() {
		var slot string
		var e suffixEntry
		if err := rows.Scan(&slot, &e.Surface, &e.Harmony, &e.Constraint); err != nil {
			return nil, fmt.Errorf("load suffix rules: %w", err)
		}
		bySlot[slot] = append(bySlot[slot], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load suffix rules: %w", err)
	}

	type slotBlock struct {
		Slot     string        `json:"slot"`
		Suffixes []suffixEntry `json:"suffixes"`
	}
	var file struct {
		Slots []slotBlock `json:"slots"`
	}
	for _, slot := range slotOrder {
		key := slotKey(slot)
		file.Slots = append(file.Slots, slotBlock{Slot: key, Suffixes: bySlot[key]})
	}
	return json.Marshal(file)
}

func (r *Repository) loadPhonologyResource(ctx context.Context) ([]byte, error) {
	var blob []byte
	var back, front string
	var minRunes int
	err := r.pool.QueryRow(ctx, `
		SELECT mutations, back_vowel, front_vowel, min_stem_runes
		FROM kaz_phonology WHERE id = 1`).
		Scan(&blob, &back, &front, &minRunes)
	if err != nil {
		return nil, fmt.Errorf("load phonology: %w", err)
	}

	var muts []mutationRow
	if err := json.Unmarshal(blob, &muts); err != nil {
		return nil, fmt.Errorf("load phonology: %w", err)
	}

	var file struct {
		Mutations []mutationRow `json:"mutations"`
		Elision   struct {
			BackVowel    string `json:"back_vowel"`
			FrontVowel   string `json:"front_vowel"`
			MinStemRunes int    `json:"min_stem_runes"`
		} `json:"elision"`
	}
	file.Mutations = muts
	file.Elision.BackVowel = back
	file.Elision.FrontVowel = front
	file.Elision.MinStemRunes = minRunes
	return json.Marshal(file)
}
