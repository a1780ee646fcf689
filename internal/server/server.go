package server

import (
	"context"

	"astro-search-app/config"
	"astro-search-app/internal/store"
)

// The external search API, the embedding model and the database are
// collaborators behind narrow interfaces so the handlers can be exercised
// with fakes.

type Fetcher interface {
	FetchFeed(query string, maxResults int) (string, error)
}

type Embedder interface {
	Embed(text string) ([]float32, error)
}

type DocumentStore interface {
	PaperExists(ctx context.Context, id string) (bool, error)
	InsertPapers(ctx context.Context, documents []store.StoredDocument) error
	VectorSearch(ctx context.Context, vector []float32, numCandidates int, limit int) ([]store.ScoredDocument, error)
}

// Server holds the process-wide collaborators shared by every request.
type Server struct {
	fetcher  Fetcher
	embedder Embedder
	store    DocumentStore
	cfg      config.AppConfig
}

func New(fetcher Fetcher, embedder Embedder, documentStore DocumentStore, cfg config.AppConfig) *Server {
	return &Server{
		fetcher:  fetcher,
		embedder: embedder,
		store:    documentStore,
		cfg:      cfg,
	}
}
