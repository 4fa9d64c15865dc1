// Package di wires the notegen runtime from a validated configuration.
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-notegen/internal/langtag"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/internal/logging/console"
	"github.com/goliatone/go-notegen/internal/logging/gologger"
	"github.com/goliatone/go-notegen/internal/manifest"
	"github.com/goliatone/go-notegen/internal/markdown"
	"github.com/goliatone/go-notegen/internal/notes"
	"github.com/goliatone/go-notegen/internal/output"
	"github.com/goliatone/go-notegen/internal/runtimeconfig"
	"github.com/goliatone/go-notegen/internal/source"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// Container holds the services built for one configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	loader         notes.SourceLoader
	writer         *output.FileWriter
	manifest       manifest.Repository
	service        *notes.Service
	now            func() time.Time

	closers []func() error
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider replaces the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithSourceLoader overrides the OS backed source loader.
func WithSourceLoader(loader notes.SourceLoader) Option {
	return func(c *Container) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithManifestRepository overrides the repository selected by the manifest config.
func WithManifestRepository(repo manifest.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.manifest = repo
		}
	}
}

// WithClock overrides the time source used for front matter and manifest entries.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and builds every service it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureManifest(context.Background()); err != nil {
		return nil, err
	}
	if err := c.configureWriter(); err != nil {
		c.closeQuietly()
		return nil, err
	}
	if c.loader == nil {
		c.loader = source.NewOSLoader()
	}

	svc, err := notes.NewService(notes.Config{
		Loader:    c.loader,
		Writer:    c.writer,
		Manifest:  c.manifest,
		Languages: langtag.Default().With(cfg.Languages),
		Prefix:    cfg.Prefix,
		EmitTag:   cfg.GenerateTags,
		Logger:    c.loggerProvider,
		Now:       c.now,
	})
	if err != nil {
		c.closeQuietly()
		return nil, err
	}
	c.service = svc

	logging.ModuleLogger(c.loggerProvider, "notegen.di").Debug("container.ready",
		"output_dir", c.writer.Dir(),
		"format", cfg.Format,
		"manifest", c.manifest != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: level})
	}
	return nil
}

func (c *Container) configureManifest(ctx context.Context) error {
	if c.manifest != nil || !c.Config.Manifest.Enabled {
		return nil
	}

	dsn := strings.TrimSpace(c.Config.Manifest.DSN)
	if dsn == "" {
		c.manifest = manifest.NewMemoryRepository()
		return nil
	}

	repo, closeFn, err := manifest.OpenRepository(ctx, dsn,
		manifest.WithLogger(logging.ManifestLogger(c.loggerProvider)),
	)
	if err != nil {
		return fmt.Errorf("configure manifest: %w", err)
	}
	c.manifest = repo
	c.closers = append(c.closers, closeFn)
	return nil
}

func (c *Container) configureWriter() error {
	cfg := c.Config
	var renderer *markdown.Renderer
	if output.Format(cfg.Format) == output.FormatHTML {
		renderer = markdown.NewRenderer(markdown.RenderOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		})
	}

	writer, err := output.NewFileWriter(output.Config{
		Dir:         cfg.OutputDir,
		Naming:      output.Naming(cfg.Filenames),
		Format:      output.Format(cfg.Format),
		FrontMatter: cfg.FrontMatter,
		CreateDir:   cfg.CreateOutputDir,
		Renderer:    renderer,
		Logger:      logging.OutputLogger(c.loggerProvider),
		Now:         c.now,
	})
	if err != nil {
		return fmt.Errorf("configure writer: %w", err)
	}
	c.writer = writer
	return nil
}

// LoggerProvider returns the provider every module logger is drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// NotesService returns the generation service.
func (c *Container) NotesService() *notes.Service {
	return c.service
}

// Writer returns the file writer notes are written with.
func (c *Container) Writer() *output.FileWriter {
	return c.writer
}

// ManifestRepository returns the manifest repository, or nil when history is disabled.
func (c *Container) ManifestRepository() manifest.Repository {
	return c.manifest
}

// Close releases resources opened by the container.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Container) closeQuietly() {
	_ = c.Close()
}
