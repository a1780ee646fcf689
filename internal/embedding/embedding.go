package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
)

// Service generates semantic embeddings by calling an Ollama instance hosting
// a pretrained sentence-embedding model (all-minilm, 384 dimensions, by
// default). Construct it once in main and share it: the model load on the
// Ollama side is expensive and the service itself is read-only, so one
// instance serves every request.
type Service struct {
	client     *http.Client
	baseURL    string
	model      string
	dimensions int
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func New(baseURL string, model string, dimensions int) *Service {
	return &Service{
		client:     &http.Client{},
		baseURL:    baseURL,
		model:      model,
		dimensions: dimensions,
	}
}

// Embed returns the fixed-length embedding vector for a text. The model is
// deterministic: the same text always embeds to the same vector.
func (s *Service) Embed(text string) ([]float32, error) {
	requestBody, err := json.Marshal(embedRequest{Model: s.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Post(s.baseURL+"/api/embeddings", "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("embedding service request failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			fmt.Println("Error closing embedding response body:", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding service returned non-OK status %d: %s", resp.StatusCode, string(body))
	}

	var parsed embedResponse
	err = json.NewDecoder(resp.Body).Decode(&parsed)
	if err != nil {
		return nil, err
	}

	vector := make([]float32, len(parsed.Embedding))
	for i, v := range parsed.Embedding {
		vector[i] = float32(v)
	}

	return vector, nil
}

// Dimensions returns the embedding vector size the model produces.
func (s *Service) Dimensions() int {
	return s.dimensions
}

func (s *Service) ModelName() string {
	return s.model
}

// CheckHealth probes the embedding host and records whether it is reachable.
// Main runs this in a loop so /health reflects the current state.
func (s *Service) CheckHealth(healthStatus *bool, healthMutex *sync.Mutex) {
	resp, err := s.client.Get(s.baseURL + "/api/tags")
	if err != nil {
		log.Println("Error checking embedding service health:", err)
		healthMutex.Lock()
		*healthStatus = false
		healthMutex.Unlock()
		return
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			fmt.Println("Error closing embedding health response body:", err)
		}
	}(resp.Body)

	isHealthy := resp.StatusCode >= 200 && resp.StatusCode < 300

	healthMutex.Lock()
	*healthStatus = isHealthy
	healthMutex.Unlock()
}
