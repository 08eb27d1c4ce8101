package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/neurotrack/progression/internal/report"
	"github.com/neurotrack/progression/pkg/metrics"
)

const defaultShardCount = 16

// memStore is an in-memory Store sharded by patient id to keep lock
// contention low under concurrent workers.
type memStore struct {
	shards []*shard
}

type shard struct {
	mu   sync.RWMutex
	docs map[string]report.Document
}

// NewMemStore creates an in-memory document store.
func NewMemStore(opts ...Option) Store {
	s := &memStore{}
	cfg := storeConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.shards = make([]*shard, cfg.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{docs: make(map[string]report.Document)}
	}
	metrics.UpdateStoreShardCount(cfg.shardCount)
	return s
}

func (s *memStore) shardFor(patientID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(patientID)) //nolint:errcheck // fnv hash write cannot fail
	return s.shards[int(h.Sum32())%len(s.shards)]
}

func (s *memStore) Put(_ context.Context, doc report.Document) error {
	if doc.PatientID == "" {
		return ErrEmptyPatientID
	}
	start := time.Now()
	sh := s.shardFor(doc.PatientID)
	sh.mu.Lock()
	sh.docs[doc.PatientID] = doc
	sh.mu.Unlock()
	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateDocumentsStored(s.Count())
	return nil
}

func (s *memStore) Get(_ context.Context, patientID string) (report.Document, error) {
	if patientID == "" {
		return report.Document{}, ErrEmptyPatientID
	}
	start := time.Now()
	sh := s.shardFor(patientID)
	sh.mu.RLock()
	doc, ok := sh.docs[patientID]
	sh.mu.RUnlock()
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if !ok {
		return report.Document{}, ErrNotFound
	}
	return doc, nil
}

func (s *memStore) Count() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.docs)
		sh.mu.RUnlock()
	}
	return total
}
