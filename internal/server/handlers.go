package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"astro-search-app/internal/arxiv"
	"astro-search-app/internal/parsing"
	"astro-search-app/internal/store"
)

type queryRequest struct {
	Query string `json:"query" binding:"required"`
	Page  int    `json:"page"`
}

// GetDocuments fetches and parses arXiv metadata for a query, five results
// per page. No embedding or storage involved.
func (s *Server) GetDocuments(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	xmlData, err := s.fetcher.FetchFeed(req.Query, s.cfg.Arxiv.PageSize*req.Page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	documents, err := parsing.ParseFeed(xmlData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(documents) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No results found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// EmbedDocuments runs the ingestion flow: fetch, parse, dedupe against the
// store, embed whatever is new and batch insert it. Entries are processed in
// feed order; an id already stored (or already staged in this batch) is
// skipped without error, so inserting zero new documents is a valid outcome.
func (s *Server) EmbedDocuments(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	xmlData, err := s.fetcher.FetchFeed(req.Query, s.cfg.Arxiv.EmbedMaxResults)
	if err != nil {
		status := http.StatusInternalServerError
		var fetchErr *arxiv.FetchError
		if errors.As(err, &fetchErr) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	documents, err := parsing.ParseFeed(xmlData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(documents) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No results found"})
		return
	}

	ctx := c.Request.Context()
	staged := make([]store.StoredDocument, 0, len(documents))
	seen := make(map[string]bool, len(documents))

	for _, document := range documents {
		// arXiv feeds can repeat an id across pages; don't re-embed it.
		if seen[document.ID] {
			continue
		}
		seen[document.ID] = true

		exists, err := s.store.PaperExists(ctx, document.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if exists {
			continue
		}

		text := document.EmbeddingText()
		vector, err := s.embedder.Embed(text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		staged = append(staged, store.StoredDocument{
			ID:        document.ID,
			PDFLink:   document.PDFLink,
			Text:      strings.TrimSpace(text),
			Embedding: vector,
			Category:  document.Category,
			DOI:       document.DOI,
			Published: document.Published,
			Updated:   document.Updated,
			Authors:   document.Authors,
			Summary:   document.Summary,
			Title:     document.Title,
		})
	}

	if len(staged) > 0 {
		err = s.store.InsertPapers(ctx, staged)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	log.Printf("Ingested %d new documents for query %q\n", len(staged), req.Query)
	c.JSON(http.StatusOK, gin.H{"status": 200, "inserted_documents": len(staged)})
}

// Embedding returns the raw embedding vector of the query text.
func (s *Server) Embedding(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vector, err := s.embedder.Embed(req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"embedded_message": vector})
}

// VectorSearch embeds the query and returns the closest stored documents,
// ranked by the index's similarity score.
func (s *Server) VectorSearch(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vector, err := s.embedder.Embed(req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results, err := s.store.VectorSearch(c.Request.Context(), vector, s.cfg.Search.NumCandidates, s.cfg.Search.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mongo vector search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": results})
}
