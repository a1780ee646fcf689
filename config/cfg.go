package config

import (
	"strconv"
	"time"

	"astro-search-app/internal/envHelper"
)

type AppConfig struct {
	Arxiv     ArxivConfig     `json:"arxiv"`
	Embedding EmbeddingConfig `json:"embedding"`
	Search    SearchConfig    `json:"search"`
}

type ArxivConfig struct {
	BaseURL                   string        `json:"base_url"`
	PageSize                  int           `json:"page_size"`
	EmbedMaxResults           int           `json:"embed_max_results"`
	MinimumGapBetweenRequests time.Duration `json:"minimum_gap_between_requests"`
}

type EmbeddingConfig struct {
	BaseURL    string `json:"base_url"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}

type SearchConfig struct {
	IndexName     string `json:"index_name"`
	NumCandidates int    `json:"num_candidates"`
	Limit         int    `json:"limit"`
}

// Load builds the application config from environment variables, falling
// back to the defaults the client app was built against.
func Load() AppConfig {
	return AppConfig{
		Arxiv: ArxivConfig{
			BaseURL:                   envHelper.GetEnvVariableWithDefault("ARXIV_URL", "http://export.arxiv.org"),
			PageSize:                  intEnv("PAGE_SIZE", 5),
			EmbedMaxResults:           intEnv("EMBED_MAX_RESULTS", 1000),
			MinimumGapBetweenRequests: time.Duration(intEnv("MINIMUM_GAP_BETWEEN_REQUESTS_SECONDS", 0)) * time.Second,
		},
		Embedding: EmbeddingConfig{
			BaseURL:    envHelper.GetEnvVariableWithDefault("OLLAMA_URL", "http://localhost:11434"),
			Model:      envHelper.GetEnvVariableWithDefault("EMBEDDING_MODEL", "all-minilm"),
			Dimensions: intEnv("EMBEDDING_DIMENSIONS", 384),
		},
		Search: SearchConfig{
			IndexName:     envHelper.GetEnvVariableWithDefault("VECTOR_INDEX_NAME", "search_similar"),
			NumCandidates: intEnv("NUM_CANDIDATES", 200),
			Limit:         intEnv("SEARCH_LIMIT", 10),
		},
	}
}

func intEnv(key string, fallback int) int {
	raw := envHelper.GetEnvVariableWithDefault(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
