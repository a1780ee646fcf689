package arxiv

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// FetchError is returned when the arXiv export API is unreachable or answers
// with a non-OK status. The transport cause is kept for the error message.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch arXiv data: %v", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Client talks to the arXiv export API.
type Client struct {
	baseURL string
	client  *http.Client

	// arXiv asks automated clients to space out their requests, so
	// successive fetches can be forced minGap apart.
	minGap          time.Duration
	lastRequestTime time.Time
	lastRequestMu   sync.Mutex
}

func New(baseURL string, minGap time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		minGap:  minGap,
	}
}

// FetchFeed retrieves the raw Atom XML for a free-text query. No retries; a
// single failed request surfaces directly to the caller as a FetchError.
func (c *Client) FetchFeed(query string, maxResults int) (string, error) {
	c.waitMinimumGap()

	endpoint := fmt.Sprintf("%s/api/query?search_query=all:%s&start=0&max_results=%d",
		c.baseURL, url.QueryEscape(query), maxResults)

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return "", &FetchError{Cause: err}
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			fmt.Println("Error closing arXiv response body:", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{Cause: fmt.Errorf("arXiv returned non-OK status: %v", resp.Status)}
	}

	xmlBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Cause: err}
	}

	return string(xmlBytes), nil
}

func (c *Client) waitMinimumGap() {
	if c.minGap <= 0 {
		return
	}

	c.lastRequestMu.Lock()
	timeSinceLastRequest := time.Since(c.lastRequestTime)
	if timeSinceLastRequest < c.minGap {
		sleepTime := c.minGap - timeSinceLastRequest
		log.Printf("Sleeping for %v to meet the minimum gap between arXiv requests\n", sleepTime)
		time.Sleep(sleepTime)
	}
	c.lastRequestTime = time.Now()
	c.lastRequestMu.Unlock()
}
