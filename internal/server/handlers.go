package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/darkhanakh/pg-kazsearch/morph"
)

// maxBatchWords bounds one batch request; a full-text indexer should
// chunk its calls.
const maxBatchWords = 1000

type stemResult struct {
	Word string `json:"word"`
	Kind string `json:"kind"`
	Form string `json:"form"`
}

func toResult(word string, out morph.Outcome) stemResult {
	return stemResult{Word: word, Kind: out.Kind.String(), Form: out.Form}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStemQuery(c *gin.Context) {
	word := c.Query("word")
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing word parameter"})
		return
	}
	c.JSON(http.StatusOK, toResult(word, s.stemmer.Resolve(word)))
}

type stemBatchRequest struct {
	Words []string `json:"words" binding:"required"`
}

func (s *Server) handleStemBatch(c *gin.Context) {
	var req stemBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Words) > maxBatchWords {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many words in one batch"})
		return
	}

	results := make([]stemResult, len(req.Words))
	for i, word := range req.Words {
		results[i] = toResult(word, s.stemmer.Resolve(word))
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type segmentStep struct {
	Surface string `json:"surface"`
	Slot    string `json:"slot"`
	Repair  string `json:"repair"`
}

type segmentResult struct {
	Lemma string        `json:"lemma"`
	Steps []segmentStep `json:"steps"`
}

func (s *Server) handleSegment(c *gin.Context) {
	var req stemBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Words) > maxBatchWords {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many words in one batch"})
		return
	}

	out := make(map[string][]segmentResult, len(req.Words))
	for _, word := range req.Words {
		ds := s.stemmer.Segment(word)
		results := make([]segmentResult, len(ds))
		for i, d := range ds {
			steps := make([]segmentStep, len(d.Steps))
			for j, step := range d.Steps {
				steps[j] = segmentStep{
					Surface: step.Surface,
					Slot:    step.Slot.String(),
					Repair:  step.Repair.String(),
				}
			}
			results[i] = segmentResult{Lemma: d.Lemma, Steps: steps}
		}
		out[word] = results
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"store":          s.stemmer.Snapshot().Stats(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"generation":     s.generation.Load(),
	})
}

// handleReload swaps in a freshly loaded store. In-flight requests
// finish on the snapshot they started with.
func (s *Server) handleReload(c *gin.Context) {
	var st *morph.Store
	var err error
	if s.dataDir != "" {
		st, err = morph.LoadDir(s.dataDir)
	} else {
		st, err = morph.DefaultStore()
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.stemmer.Reload(st)
	gen := s.generation.Add(1)
	c.JSON(http.StatusOK, gin.H{
		"generation": gen,
		"store":      st.Stats(),
	})
}
