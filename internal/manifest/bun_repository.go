package manifest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

var errNoDatabase = errors.New("manifest: bun repository requires a database")

// BunRepository persists entries through Bun.
type BunRepository struct {
	db          *bun.DB
	logger      interfaces.Logger
	broadcaster *broadcaster
}

// NewBunRepository constructs a Bun-backed repository. Call EnsureSchema
// before first use.
func NewBunRepository(db *bun.DB, logger interfaces.Logger) *BunRepository {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &BunRepository{
		db:          db,
		logger:      logger,
		broadcaster: newBroadcaster(),
	}
}

// EnsureSchema creates the manifest table and its source index.
func (r *BunRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return errNoDatabase
	}
	if _, err := r.db.NewCreateTable().Model((*entryModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := r.db.NewCreateIndex().
		Model((*entryModel)(nil)).
		Index("notegen_manifest_source_idx").
		Column("source", "generated_at").
		IfNotExists().
		Exec(ctx)
	return err
}

// Record inserts entries in a single transaction.
func (r *BunRepository) Record(ctx context.Context, entries []Entry) error {
	if r.db == nil {
		return errNoDatabase
	}
	if len(entries) == 0 {
		return nil
	}

	models := make([]entryModel, len(entries))
	for i, entry := range entries {
		models[i] = modelFromEntry(entry)
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models).Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	r.logger.Debug("manifest.recorded", "run_id", entries[0].RunID, "entries", len(entries))
	r.broadcaster.Broadcast(newRecordEvent(entries))
	return nil
}

// ListBySource returns up to limit entries for source, newest first.
func (r *BunRepository) ListBySource(ctx context.Context, source string, limit int) ([]Entry, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	var models []entryModel
	query := r.db.NewSelect().
		Model(&models).
		Where("source = ?", source).
		Order("generated_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return toEntries(models)
}

// LatestRun returns the entries of the most recent run for source.
func (r *BunRepository) LatestRun(ctx context.Context, source string) ([]Entry, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}

	var latest entryModel
	err := r.db.NewSelect().
		Model(&latest).
		Where("source = ?", source).
		Order("generated_at DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntriesNotFound
		}
		return nil, err
	}

	var models []entryModel
	if err := r.db.NewSelect().
		Model(&models).
		Where("source = ?", source).
		Where("run_id = ?", latest.RunID).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return toEntries(models)
}

// Subscribe delivers record events until ctx is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan RecordEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

type entryModel struct {
	bun.BaseModel `bun:"table:notegen_manifest"`

	ID          int64     `bun:",pk,autoincrement"`
	RunID       string    `bun:"run_id,notnull"`
	Source      string    `bun:"source,notnull"`
	Title       string    `bun:"title"`
	DocumentID  string    `bun:"document_id"`
	Path        string    `bun:"path"`
	Checksum    string    `bun:"checksum"`
	GeneratedAt time.Time `bun:"generated_at,notnull"`
}

func modelFromEntry(entry Entry) entryModel {
	return entryModel{
		RunID:       entry.RunID,
		Source:      entry.Source,
		Title:       entry.Title,
		DocumentID:  entry.DocumentID,
		Path:        entry.Path,
		Checksum:    entry.Checksum,
		GeneratedAt: entry.GeneratedAt.UTC(),
	}
}

func toEntries(models []entryModel) ([]Entry, error) {
	if len(models) == 0 {
		return nil, ErrEntriesNotFound
	}
	out := make([]Entry, len(models))
	for i, model := range models {
		out[i] = Entry{
			RunID:       model.RunID,
			Source:      model.Source,
			Title:       model.Title,
			DocumentID:  model.DocumentID,
			Path:        model.Path,
			Checksum:    model.Checksum,
			GeneratedAt: model.GeneratedAt,
		}
	}
	return out, nil
}
