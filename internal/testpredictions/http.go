package testpredictions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRequests submits prediction requests concurrently using a worker pool
func submitRequests(ctx context.Context, config *Config, requests []PredictionRequest, stats *Stats) error {
	log.Printf("submitting %d requests with %d workers...", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predictions"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	requestChan := make(chan PredictionRequest, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range requestChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result := submitSingleRequest(ctx, client, url, req)

				atomic.AddInt64(&submitted, 1)
				switch result {
				case "success":
					atomic.AddInt64(&successful, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				case "failed":
					atomic.AddInt64(&failed, 1)
				}

				if config.Verbose {
					total := atomic.LoadInt64(&submitted)
					if total%1000 == 0 {
						log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
							total, len(requests),
							atomic.LoadInt64(&successful),
							atomic.LoadInt64(&duplicate),
							atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(requestChan)
		for _, req := range requests {
			select {
			case <-ctx.Done():
				return
			case requestChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RequestsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`request submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.RequestsSuccessful, stats.RequestsDuplicate, stats.RequestsFailed)

	return nil
}

// submitSingleRequest submits one request and classifies the outcome
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, req PredictionRequest) string {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Status == "accepted" {
			return "success"
		}
		return "success"
	case StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}
