// Command pgdict manages the dictionary tables in PostgreSQL: schema
// migrations, pushing the stemmer's resources into the database, and
// exporting the stopword list for a text search configuration.
//
// Usage:
//
//	pgdict -migrate up
//	pgdict -sync -data ./data
//	pgdict -status
//	pgdict -export-stop kazakh.stop
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/darkhanakh/pg-kazsearch/internal/pgstore"
	"github.com/darkhanakh/pg-kazsearch/morph"
)

func main() {
	log.SetPrefix("[pgdict] ")
	log.SetFlags(0)

	var (
		dbURL      = flag.String("db", "", "database URL (defaults to $DATABASE_URL)")
		migrateDir = flag.String("migrate", "", "run schema migrations: up or down")
		doSync     = flag.Bool("sync", false, "replace the dictionary tables with the current resources")
		dataDir    = flag.String("data", "", "load resources from this directory instead of the embedded set")
		status     = flag.Bool("status", false, "print table counts and the last sync run")
		exportStop = flag.String("export-stop", "", "write the stopword table to this file, one word per line")
	)
	flag.Parse()

	url := *dbURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		log.Fatal("no database URL: pass -db or set DATABASE_URL")
	}

	switch *migrateDir {
	case "":
	case "up":
		if err := pgstore.MigrateUp(url); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Print("migrations applied")
	case "down":
		if err := pgstore.MigrateDown(url); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Print("migrations rolled back")
	default:
		log.Fatalf("unknown -migrate direction %q (want up or down)", *migrateDir)
	}

	if !*doSync && !*status && *exportStop == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := pgstore.Connect(ctx, url, pgstore.DefaultPoolConfig())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()
	repo := pgstore.NewRepository(db)

	if *doSync {
		store, err := loadStore(*dataDir)
		if err != nil {
			log.Fatalf("load resources: %v", err)
		}
		runID, err := repo.SyncStore(ctx, store)
		if err != nil {
			log.Fatalf("sync: %v", err)
		}
		stats := store.Stats()
		log.Printf("sync %s: %d lemmas, %d stopwords, %d exclusions, %d suffix rules",
			runID, stats.Lemmas, stats.Stopwords, stats.Exclusions, stats.SuffixRules)
	}

	if *status {
		printStatus(ctx, repo)
	}

	if *exportStop != "" {
		words, err := repo.WordList(ctx, "stopwords")
		if err != nil {
			log.Fatalf("export stopwords: %v", err)
		}
		out := strings.Join(words, "\n") + "\n"
		if err := os.WriteFile(*exportStop, []byte(out), 0o644); err != nil {
			log.Fatalf("export stopwords: %v", err)
		}
		log.Printf("wrote %d stopwords to %s", len(words), *exportStop)
	}
}

func loadStore(dataDir string) (*morph.Store, error) {
	if dataDir != "" {
		return morph.LoadDir(dataDir)
	}
	return morph.DefaultStore()
}

func printStatus(ctx context.Context, repo *pgstore.Repository) {
	counts, err := repo.Counts(ctx)
	if err != nil {
		log.Fatalf("status: %v", err)
	}
	for _, table := range []string{"kaz_lemmas", "kaz_stopwords", "kaz_exclusions", "kaz_suffix_rules", "kaz_sync_runs"} {
		fmt.Printf("%-18s %d\n", table, counts[table])
	}

	run, err := repo.LastSyncRun(ctx)
	if err != nil {
		log.Fatalf("status: %v", err)
	}
	if run == nil {
		fmt.Println("never synced")
		return
	}
	fmt.Printf("last sync %s at %s\n", run.ID, run.StartedAt.Format(time.RFC3339))
}
