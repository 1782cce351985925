// Command stemd serves the Kazakh stemmer over HTTP.
//
// Configuration is read from the environment (PORT, DATA_DIR,
// ADMIN_JWT_SECRET, CORS_ALLOWED_ORIGINS), optionally seeded from a
// .env file in the working directory.
package main

import (
	"log"
	"net/http"

	"github.com/darkhanakh/pg-kazsearch/internal/config"
	"github.com/darkhanakh/pg-kazsearch/internal/server"
	"github.com/darkhanakh/pg-kazsearch/morph"
)

func main() {
	log.SetPrefix("[stemd] ")
	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var stemmer *morph.Stemmer
	if cfg.DataDir != "" {
		store, err := morph.LoadDir(cfg.DataDir)
		if err != nil {
			log.Fatalf("load %s: %v", cfg.DataDir, err)
		}
		stemmer = morph.New(store)
		log.Printf("loaded resources from %s", cfg.DataDir)
	} else {
		stemmer, err = morph.Default()
		if err != nil {
			log.Fatalf("load embedded resources: %v", err)
		}
		log.Print("loaded embedded resources")
	}

	stats := stemmer.Snapshot().Stats()
	log.Printf("store ready: %d lemmas, %d stopwords, %d exclusions, %d suffix rules",
		stats.Lemmas, stats.Stopwords, stats.Exclusions, stats.SuffixRules)

	srv := server.New(stemmer, server.NewTokenService(cfg.AdminJWTSecret), cfg.DataDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler(cfg.CORSAllowedOrigins)); err != nil {
		log.Fatalf("server: %v", err)
	}
}
