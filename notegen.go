// Package notegen turns annotated source files into Markdown notes.
//
// Annotations are comment lines carrying a marker after the prefix "//@":
// "//@@" starts a note with a title, "//@ " adds a line of prose, and
// "//@{" / "//@}" enclose a region of code copied into a fenced block.
package notegen

import (
	"context"

	"github.com/goliatone/go-notegen/internal/annotate"
	"github.com/goliatone/go-notegen/internal/di"
	"github.com/goliatone/go-notegen/internal/generator"
	"github.com/goliatone/go-notegen/internal/langtag"
	"github.com/goliatone/go-notegen/internal/manifest"
	"github.com/goliatone/go-notegen/internal/notes"
	"github.com/goliatone/go-notegen/internal/tidy"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// Annotation failures, matchable with errors.Is on anything Module returns.
var (
	ErrNoAnnotationsFound  = annotate.ErrNoAnnotationsFound
	ErrInvalidMarker       = annotate.ErrInvalidMarker
	ErrMissingTitle        = annotate.ErrMissingTitle
	ErrUnmatchedCloser     = annotate.ErrUnmatchedCloser
	ErrUnclosedRegion      = annotate.ErrUnclosedRegion
	ErrOrphanAnnotation    = generator.ErrOrphanAnnotation
	ErrUnmappedLanguageTag = langtag.ErrUnmappedLanguageTag
	ErrHistoryNotFound     = manifest.ErrEntriesNotFound
)

type (
	// GenerateOptions tunes a single Generate call.
	GenerateOptions = notes.GenerateOptions
	// GenerateResult describes a completed generation run.
	GenerateResult = notes.GenerateResult
	// Document is one generated note.
	Document = generator.Document
	// TidyResult summarizes a tidy rewrite.
	TidyResult = tidy.Result
	// HistoryEntry is one note recorded in the manifest.
	HistoryEntry = manifest.Entry
	// RunEvent is published after each recorded run.
	RunEvent = manifest.RecordEvent
	// AnnotationError carries the line an annotation failure was found on.
	AnnotationError = annotate.Error
	// Option customises the runtime built by New.
	Option = di.Option
)

var (
	WithLoggerProvider     = di.WithLoggerProvider
	WithSourceLoader       = di.WithSourceLoader
	WithManifestRepository = di.WithManifestRepository
	WithClock              = di.WithClock
)

// LineOf returns the 1-based line an annotation error points at, or 0.
func LineOf(err error) int {
	return annotate.LineOf(err)
}

// Module is the top level notegen runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a notegen module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// LoggerProvider returns the provider module loggers are drawn from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Notes returns the generation service.
func (m *Module) Notes() *notes.Service {
	return m.container.NotesService()
}

// Generate writes one note per titled section of the annotations in path.
func (m *Module) Generate(ctx context.Context, path string, opts GenerateOptions) (*GenerateResult, error) {
	return m.container.NotesService().Generate(ctx, path, opts)
}

// Tidy strips annotation lines from path, keeping a ".orig" backup.
func (m *Module) Tidy(ctx context.Context, path string) (*TidyResult, error) {
	return m.container.NotesService().Tidy(ctx, path)
}

// History lists up to limit recorded notes for path, newest first.
func (m *Module) History(ctx context.Context, path string, limit int) ([]HistoryEntry, error) {
	return m.container.NotesService().History(ctx, path, limit)
}

// WatchRuns streams an event for every recorded run until ctx is done.
// It returns ErrHistoryNotFound when the manifest is disabled.
func (m *Module) WatchRuns(ctx context.Context) (<-chan RunEvent, error) {
	repo := m.container.ManifestRepository()
	if repo == nil {
		return nil, ErrHistoryNotFound
	}
	return repo.Subscribe(ctx)
}

// Close releases the manifest database, if one was opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
