package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores shared records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]SharedRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]SharedRecord)}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record SharedRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[record.ID] = record
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recordID string) (SharedRecord, error) {
	if err := ctx.Err(); err != nil {
		return SharedRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[recordID]
	if !ok {
		return SharedRecord{}, ErrNotFound
	}
	return record, nil
}

// Delete removes a record.
func (r *MemoryRepo) Delete(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[recordID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, recordID)
	return nil
}

// ListViewable returns public records plus the viewer's private ones,
// newest first.
func (r *MemoryRepo) ListViewable(ctx context.Context, viewerID string) ([]SharedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SharedRecord, 0, len(r.byID))
	for _, record := range r.byID {
		if record.ViewableBy(viewerID) {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListPublicSince returns public records created at or after since,
// newest first.
func (r *MemoryRepo) ListPublicSince(ctx context.Context, since time.Time) ([]SharedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SharedRecord, 0, len(r.byID))
	for _, record := range r.byID {
		if !record.IsPrivate && !record.CreatedAt.Before(since) {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByOwner returns the owner's records, newest first, up to limit.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]SharedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SharedRecord, 0, limit)
	for _, record := range r.byID {
		if record.OwnerID == ownerID {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// IncrementLikes bumps the like counter and returns the new value.
func (r *MemoryRepo) IncrementLikes(ctx context.Context, recordID string) (int, error) {
	return r.increment(ctx, recordID, func(record *SharedRecord) *int { return &record.Likes })
}

// IncrementSaves bumps the save counter and returns the new value.
func (r *MemoryRepo) IncrementSaves(ctx context.Context, recordID string) (int, error) {
	return r.increment(ctx, recordID, func(record *SharedRecord) *int { return &record.Saves })
}

func (r *MemoryRepo) increment(ctx context.Context, recordID string, field func(*SharedRecord) *int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[recordID]
	if !ok {
		return 0, ErrNotFound
	}
	counter := field(&record)
	*counter++
	r.byID[recordID] = record
	return *counter, nil
}

func sortNewestFirst(records []SharedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
