// Package manifest records which notes each generation run produced.
package manifest

import (
	"context"
	"errors"
	"time"
)

// ErrEntriesNotFound indicates that a source has no recorded history.
var ErrEntriesNotFound = errors.New("manifest: entries not found")

// Entry is one note written during a run.
type Entry struct {
	RunID       string
	Source      string
	Title       string
	DocumentID  string
	Path        string
	Checksum    string
	GeneratedAt time.Time
}

// Repository persists manifest entries and notifies subscribers of new runs.
type Repository interface {
	Record(ctx context.Context, entries []Entry) error
	ListBySource(ctx context.Context, source string, limit int) ([]Entry, error)
	LatestRun(ctx context.Context, source string) ([]Entry, error)
	Subscribe(ctx context.Context) (<-chan RecordEvent, error)
}

// RecordEvent is emitted once per Record call.
type RecordEvent struct {
	RunID   string
	Source  string
	Entries int
}

func newRecordEvent(entries []Entry) RecordEvent {
	evt := RecordEvent{Entries: len(entries)}
	if len(entries) > 0 {
		evt.RunID = entries[0].RunID
		evt.Source = entries[0].Source
	}
	return evt
}
