// Package server exposes the stemmer as a JSON HTTP API with an
// authenticated admin reload endpoint.
package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

// Server holds the stemmer and the reload configuration.
type Server struct {
	stemmer    *morph.Stemmer
	tokens     *TokenService
	dataDir    string // empty means reload from the embedded resources
	started    time.Time
	generation atomic.Int64
}

// New wires a server around an initialized stemmer. dataDir is where
// admin reloads read fresh resources from; empty falls back to the
// embedded defaults.
func New(stemmer *morph.Stemmer, tokens *TokenService, dataDir string) *Server {
	return &Server{
		stemmer: stemmer,
		tokens:  tokens,
		dataDir: dataDir,
		started: time.Now(),
	}
}

// Engine builds the gin engine with all routes registered.
func (s *Server) Engine() *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), RequestID())

	g.GET("/healthz", s.handleHealth)

	api := g.Group("/api/v1")
	api.GET("/stem", s.handleStemQuery)
	api.POST("/stem", s.handleStemBatch)
	api.POST("/segment", s.handleSegment)
	api.GET("/stats", s.handleStats)

	admin := api.Group("/admin")
	admin.Use(s.RequireAdmin())
	admin.POST("/reload", s.handleReload)

	return g
}

// Handler wraps the engine with CORS for browser clients.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(s.Engine())
}
