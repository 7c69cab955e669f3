package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"clausevet/internal/domain"
)

// entry pairs a stored analysis with its insertion time for TTL sweeps.
type entry struct {
	analysis *domain.Analysis
	storedAt time.Time
}

// AnalysisRepo is an in-memory analysis store. Analyses exist only for the
// process lifetime; a sweep drops entries past their TTL, and when the store
// is at its cap the oldest entry is evicted to make room. Implements
// port.AnalysisRepository.
type AnalysisRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
	max     int
	ttl     time.Duration
	now     func() time.Time
}

// NewAnalysisRepo creates an AnalysisRepo. max <= 0 means unbounded;
// ttl <= 0 disables expiry.
func NewAnalysisRepo(max int, ttl time.Duration) *AnalysisRepo {
	return &AnalysisRepo{
		entries: make(map[uuid.UUID]entry),
		max:     max,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *AnalysisRepo) Save(ctx context.Context, analysis *domain.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	if _, exists := r.entries[analysis.ID]; !exists && r.max > 0 && len(r.entries) >= r.max {
		r.evictOldestLocked()
	}

	r.entries[analysis.ID] = entry{analysis: analysis, storedAt: r.now()}
	return nil
}

func (r *AnalysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || r.expired(e) {
		return nil, domain.ErrAnalysisNotFound
	}
	return e.analysis, nil
}

func (r *AnalysisRepo) List(ctx context.Context) ([]*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Analysis, 0, len(r.entries))
	for _, e := range r.entries {
		if r.expired(e) {
			continue
		}
		out = append(out, e.analysis)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AnalysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.ErrAnalysisNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *AnalysisRepo) expired(e entry) bool {
	return r.ttl > 0 && r.now().Sub(e.storedAt) > r.ttl
}

func (r *AnalysisRepo) sweepLocked() {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.entries {
		if r.expired(e) {
			delete(r.entries, id)
		}
	}
}

// evictOldestLocked drops the oldest entry to make room for a new one.
func (r *AnalysisRepo) evictOldestLocked() {
	var oldestID uuid.UUID
	var oldestAt time.Time
	first := true
	for id, e := range r.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.storedAt
			first = false
		}
	}
	if !first {
		delete(r.entries, oldestID)
	}
}
