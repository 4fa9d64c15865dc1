// Package notes runs the generation pipeline: load a source, lex and
// validate its annotations, generate notes, write them, and record the run.
package notes

import (
	"context"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-notegen/internal/annotate"
	"github.com/goliatone/go-notegen/internal/generator"
	"github.com/goliatone/go-notegen/internal/identity"
	"github.com/goliatone/go-notegen/internal/langtag"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/internal/manifest"
	"github.com/goliatone/go-notegen/internal/output"
	"github.com/goliatone/go-notegen/internal/source"
	"github.com/goliatone/go-notegen/internal/tidy"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// ErrPruneUnavailable is returned when pruning is requested from a service
// whose writer cannot prune.
var ErrPruneUnavailable = errors.New("notes: prune is not available")

// SourceLoader loads a listing for path.
type SourceLoader interface {
	Load(ctx context.Context, path string) (*source.Listing, error)
}

// DocumentWriter persists rendered notes.
type DocumentWriter interface {
	Plan(ctx context.Context, reqs []output.WriteRequest) ([]output.Written, error)
	Write(ctx context.Context, reqs []output.WriteRequest) ([]output.Written, error)
}

// Pruner removes notes left over from earlier runs.
type Pruner interface {
	Prune(ctx context.Context, source string, keep []string) ([]string, error)
}

// GenerateOptions tunes a single Generate call.
type GenerateOptions struct {
	DryRun bool
	Prune  bool
	Tidy   bool
}

// GenerateResult describes a completed run.
type GenerateResult struct {
	RunID     string
	Source    string
	Documents []generator.Document
	Written   []output.Written
	Pruned    []string
	Tidy      *tidy.Result
	DryRun    bool
}

// Config wires a Service. Loader and Writer are required.
type Config struct {
	Loader    SourceLoader
	Writer    DocumentWriter
	Manifest  manifest.Repository
	Languages langtag.Table
	Prefix    string
	EmitTag   bool
	Logger    interfaces.LoggerProvider
	Now       func() time.Time
}

// Service runs generation, tidy and history lookups.
type Service struct {
	loader    SourceLoader
	writer    DocumentWriter
	manifest  manifest.Repository
	languages langtag.Table
	prefix    string
	emitTag   bool
	provider  interfaces.LoggerProvider
	now       func() time.Time
}

// NewService constructs a Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Loader == nil {
		return nil, errors.New("notes: source loader is required")
	}
	if cfg.Writer == nil {
		return nil, errors.New("notes: document writer is required")
	}

	languages := cfg.Languages
	if languages == nil {
		languages = langtag.Default()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = annotate.DefaultPrefix
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		loader:    cfg.Loader,
		writer:    cfg.Writer,
		manifest:  cfg.Manifest,
		languages: languages,
		prefix:    prefix,
		emitTag:   cfg.EmitTag,
		provider:  cfg.Logger,
		now:       now,
	}, nil
}

// Generate turns the annotations in path into notes. No note is written
// unless every stage succeeds; tidy runs only after the notes are written.
func (s *Service) Generate(ctx context.Context, path string, opts GenerateOptions) (*GenerateResult, error) {
	runID := identity.RunID()
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runID})
	logger := logging.WithRunContext(logging.GeneratorLogger(s.provider), path, runID, "generate").WithContext(ctx)

	ext := langtag.ExtensionOf(path)
	var tag langtag.Tag
	if s.emitTag {
		resolved, err := s.languages.Lookup(ext)
		if err != nil {
			logger.Error("notes.generate.unmapped_language", "extension", ext)
			return nil, wrapAnnotationError(path, err)
		}
		tag = resolved
	}

	listing, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, wrapOperationError(CodeSourceRead, "read source "+path, err)
	}
	logging.SourceLogger(s.provider).Debug("source.loaded", "path", path, "lines", len(listing.Lines))

	docs, err := s.documents(listing, ext, logger)
	if err != nil {
		logger.Error("notes.generate.failed", "error", err, "line", annotate.LineOf(err))
		return nil, wrapAnnotationError(path, err)
	}

	result := &GenerateResult{
		RunID:     runID,
		Source:    path,
		Documents: docs,
		DryRun:    opts.DryRun,
	}

	owner := canonicalSource(path)
	reqs := make([]output.WriteRequest, len(docs))
	for i, doc := range docs {
		reqs[i] = output.WriteRequest{
			Source:     owner,
			Title:      doc.Title,
			Body:       doc.Body,
			DocumentID: identity.DocumentUUID(path, doc.Title).String(),
		}
		if s.emitTag {
			reqs[i].Tags = []string{strings.TrimPrefix(tag.Label, "#")}
		}
	}

	if opts.DryRun {
		planned, err := s.writer.Plan(ctx, reqs)
		if err != nil {
			return nil, wrapOperationError(CodeWriteFailed, "plan notes", err)
		}
		result.Written = planned
		logger.Info("notes.generate.dry_run", "documents", len(planned))
		return result, nil
	}

	written, err := s.writer.Write(ctx, reqs)
	if err != nil {
		return nil, wrapOperationError(CodeWriteFailed, "write notes", err)
	}
	result.Written = written

	if opts.Prune {
		pruned, err := s.prune(ctx, path, written)
		if err != nil {
			return result, wrapOperationError(CodePruneFailed, "prune notes", err)
		}
		result.Pruned = pruned
	}

	if err := s.record(ctx, runID, path, written); err != nil {
		return result, wrapOperationError(CodeManifestFailed, "record manifest", err)
	}

	if opts.Tidy {
		tidied, err := s.tidy(ctx, path, listing.Checksum)
		if err != nil {
			return result, err
		}
		result.Tidy = tidied
	}

	logger.Info("notes.generate.completed",
		"documents", len(written),
		"pruned", len(result.Pruned),
		"tidied", result.Tidy != nil,
	)
	return result, nil
}

// Tidy strips annotation lines from path after checking that its
// annotations are well formed, so a broken file is never rewritten. The
// rewrite goes through the host filesystem, so path must be an OS path.
func (s *Service) Tidy(ctx context.Context, path string) (*tidy.Result, error) {
	listing, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, wrapOperationError(CodeSourceRead, "read source "+path, err)
	}

	tokens, err := annotate.Lex(listing.Lines, annotate.WithPrefix(s.prefix))
	if err == nil {
		_, err = annotate.ValidateRegions(tokens)
	}
	if err != nil {
		return nil, wrapAnnotationError(path, err)
	}
	return s.tidy(ctx, path, listing.Checksum)
}

// History returns up to limit manifest entries recorded for path, newest first.
func (s *Service) History(ctx context.Context, path string, limit int) ([]manifest.Entry, error) {
	if s.manifest == nil {
		return nil, manifest.ErrEntriesNotFound
	}
	return s.manifest.ListBySource(ctx, canonicalSource(path), limit)
}

func (s *Service) documents(listing *source.Listing, ext string, logger interfaces.Logger) ([]generator.Document, error) {
	tokens, err := annotate.Lex(listing.Lines, annotate.WithPrefix(s.prefix))
	if err != nil {
		return nil, err
	}
	tokens, err = annotate.ValidateRegions(tokens)
	if err != nil {
		return nil, err
	}
	return generator.Generate(tokens, listing.Lines, generator.Options{
		LanguageTag: ext,
		EmitTag:     s.emitTag,
		Table:       s.languages,
		Logger:      logger,
	})
}

func (s *Service) prune(ctx context.Context, path string, written []output.Written) ([]string, error) {
	pruner, ok := s.writer.(Pruner)
	if !ok {
		return nil, ErrPruneUnavailable
	}
	keep := make([]string, len(written))
	for i, item := range written {
		keep[i] = item.Path
	}
	return pruner.Prune(ctx, canonicalSource(path), keep)
}

func (s *Service) record(ctx context.Context, runID, path string, written []output.Written) error {
	if s.manifest == nil || len(written) == 0 {
		return nil
	}
	at := s.now().UTC()
	owner := canonicalSource(path)
	entries := make([]manifest.Entry, len(written))
	for i, item := range written {
		entries[i] = manifest.Entry{
			RunID:       runID,
			Source:      owner,
			Title:       item.Title,
			DocumentID:  item.DocumentID,
			Path:        item.Path,
			Checksum:    hex.EncodeToString(item.Checksum),
			GeneratedAt: at,
		}
	}
	return s.manifest.Record(ctx, entries)
}

// tidy rewrites path only while it still matches the validated listing.
func (s *Service) tidy(ctx context.Context, path string, checksum []byte) (*tidy.Result, error) {
	result, err := tidy.Tidy(ctx, path, s.prefix, checksum)
	if err != nil {
		return nil, wrapOperationError(CodeTidyFailed, "tidy source "+path, err)
	}
	logging.TidyLogger(s.provider).WithContext(ctx).Info("tidy.completed",
		"path", result.Path,
		"backup", result.Backup,
		"removed", result.Removed,
	)
	return result, nil
}

// canonicalSource is the key manifest entries are stored under.
func canonicalSource(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(filepath.Clean(path))
}
