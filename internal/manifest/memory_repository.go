package manifest

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps entries for the lifetime of the process.
type MemoryRepository struct {
	mu          sync.RWMutex
	entries     []Entry
	broadcaster *broadcaster
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{broadcaster: newBroadcaster()}
}

// Record appends entries.
func (r *MemoryRepository) Record(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	r.mu.Lock()
	r.entries = append(r.entries, entries...)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newRecordEvent(entries))
	return nil
}

// ListBySource returns up to limit entries for source, newest first. Entries
// sharing a timestamp come back in reverse record order. A limit of zero or
// less returns every entry.
func (r *MemoryRepository) ListBySource(ctx context.Context, source string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := r.bySource(source)
	if len(matches) == 0 {
		return nil, ErrEntriesNotFound
	}

	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].GeneratedAt.After(matches[j].GeneratedAt)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// LatestRun returns the entries of the most recent run for source, in the
// order they were recorded.
func (r *MemoryRepository) LatestRun(ctx context.Context, source string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := r.bySource(source)
	if len(matches) == 0 {
		return nil, ErrEntriesNotFound
	}

	latest := matches[len(matches)-1]
	for _, entry := range matches {
		if entry.GeneratedAt.After(latest.GeneratedAt) {
			latest = entry
		}
	}

	var run []Entry
	for _, entry := range matches {
		if entry.RunID == latest.RunID {
			run = append(run, entry)
		}
	}
	return run, nil
}

// Subscribe delivers record events until ctx is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan RecordEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

// bySource returns a copy of every entry for source, in record order.
func (r *MemoryRepository) bySource(source string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, entry := range r.entries {
		if entry.Source == source {
			out = append(out, entry)
		}
	}
	return out
}
