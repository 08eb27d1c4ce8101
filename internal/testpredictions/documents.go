package testpredictions

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// retrieveDocuments fetches the stored prediction document for every
// submitted patient, concurrently. Missing documents are counted rather than
// treated as fatal: a request may still be in the queue.
func retrieveDocuments(ctx context.Context, config *Config, requests []PredictionRequest, stats *Stats) ([]Document, error) {
	log.Printf("retrieving %d documents with %d workers...", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		retrieved int64
		missing   int64
	)

	docs := make([]Document, len(requests))
	found := make([]bool, len(requests))

	idxChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				url := config.BaseURL + "/predictions/" + requests[idx].PatientID
				resp, err := client.Get(ctx, url)
				if err != nil {
					atomic.AddInt64(&missing, 1)
					continue
				}
				body, err := readResponseBody(resp)
				if err != nil || resp.StatusCode != StatusOK {
					atomic.AddInt64(&missing, 1)
					continue
				}
				var doc Document
				if err := json.Unmarshal(body, &doc); err != nil {
					atomic.AddInt64(&missing, 1)
					continue
				}
				docs[idx] = doc
				found[idx] = true
				atomic.AddInt64(&retrieved, 1)
			}
		}()
	}

	go func() {
		defer close(idxChan)
		for i := range requests {
			select {
			case <-ctx.Done():
				return
			case idxChan <- i:
			}
		}
	}()

	wg.Wait()

	result := make([]Document, 0, atomic.LoadInt64(&retrieved))
	for i, ok := range found {
		if ok {
			result = append(result, docs[i])
		}
	}

	stats.DocumentsRetrieved = len(result)
	log.Printf("retrieved %d documents (%d missing)", len(result), atomic.LoadInt64(&missing))
	return result, nil
}
