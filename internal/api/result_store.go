package api

import (
	"sync"
	"time"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// resultTTL bounds how long a processed result stays reviewable before the
// caller has to re-upload the document.
const resultTTL = 2 * time.Hour

type resultEntry struct {
	result    *model.AuditResult
	expiresAt time.Time
}

// resultStore keeps processed results in memory under their token until they
// are saved or exported. Entries are immutable once stored.
type resultStore struct {
	mu    sync.Mutex
	items map[string]resultEntry
}

func newResultStore() *resultStore {
	return &resultStore{
		items: make(map[string]resultEntry),
	}
}

func (s *resultStore) put(result *model.AuditResult) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = result.ID
	s.items[token] = resultEntry{
		result:    result,
		expiresAt: time.Now().Add(resultTTL),
	}
	return token
}

func (s *resultStore) get(token string) (*model.AuditResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return nil, false
	}
	return v.result, true
}

func (s *resultStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
