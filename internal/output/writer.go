// Package output writes generated notes to disk.
package output

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-notegen/internal/atomicfile"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/internal/markdown"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

var (
	// ErrOutputDirMissing is returned when the output directory does not exist
	// and creating it was not requested.
	ErrOutputDirMissing = errors.New("output: output directory does not exist")
	// ErrFrontMatterRequired is returned by Prune when notes are written
	// without front matter, since ownership cannot be established.
	ErrFrontMatterRequired = errors.New("output: prune requires front matter")
	// ErrUnsupportedFormat is returned for formats other than markdown and html.
	ErrUnsupportedFormat = errors.New("output: unsupported format")
)

// Format selects the written representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Extension returns the file extension used for f, including the dot.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// Config configures a FileWriter. Dir "" is the working directory.
type Config struct {
	Dir         string
	Naming      Naming
	Format      Format
	FrontMatter bool
	CreateDir   bool
	Renderer    *markdown.Renderer
	Logger      interfaces.Logger
	Now         func() time.Time
}

// WriteRequest is one note to write.
type WriteRequest struct {
	Source     string
	Title      string
	Body       string
	DocumentID string
	Tags       []string
}

// Written describes a note that was written, or would be on a dry run.
type Written struct {
	Title      string
	Path       string
	DocumentID string
	Checksum   []byte
	Bytes      int
}

// FileWriter writes notes into a single directory.
type FileWriter struct {
	dir         string
	naming      Naming
	format      Format
	frontMatter bool
	createDir   bool
	renderer    *markdown.Renderer
	logger      interfaces.Logger
	now         func() time.Time
}

// NewFileWriter validates cfg and constructs a FileWriter.
func NewFileWriter(cfg Config) (*FileWriter, error) {
	format := cfg.Format
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}

	naming := cfg.Naming
	if naming == "" {
		naming = NamingTitle
	}

	renderer := cfg.Renderer
	if renderer == nil && format == FormatHTML {
		renderer = markdown.NewRenderer(markdown.RenderOptions{})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FileWriter{
		dir:         strings.TrimSpace(cfg.Dir),
		naming:      naming,
		format:      format,
		frontMatter: cfg.FrontMatter,
		createDir:   cfg.CreateDir,
		renderer:    renderer,
		logger:      logger,
		now:         now,
	}, nil
}

// Dir returns the directory notes are written to.
func (w *FileWriter) Dir() string {
	if w.dir == "" {
		return "."
	}
	return w.dir
}

// Plan renders every request and resolves its path without touching disk.
func (w *FileWriter) Plan(ctx context.Context, reqs []WriteRequest) ([]Written, error) {
	planned, _, err := w.prepare(ctx, reqs)
	return planned, err
}

// Write renders and writes every request. Either every note is rendered
// before the first file is written or nothing is written.
func (w *FileWriter) Write(ctx context.Context, reqs []WriteRequest) ([]Written, error) {
	if err := w.ensureDir(); err != nil {
		return nil, err
	}

	planned, payloads, err := w.prepare(ctx, reqs)
	if err != nil {
		return nil, err
	}

	for i, item := range planned {
		select {
		case <-ctx.Done():
			return planned[:i], ctx.Err()
		default:
		}
		if err := atomicfile.WriteFile(item.Path, payloads[i], 0o644); err != nil {
			return planned[:i], fmt.Errorf("output write %s: %w", item.Path, err)
		}
		w.logger.Debug("output.document.written",
			"path", item.Path,
			"title", item.Title,
			"bytes", item.Bytes,
		)
	}
	return planned, nil
}

func (w *FileWriter) prepare(ctx context.Context, reqs []WriteRequest) ([]Written, [][]byte, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	names := nameSet{}
	planned := make([]Written, 0, len(reqs))
	payloads := make([][]byte, 0, len(reqs))
	generated := w.now().UTC()

	for _, req := range reqs {
		payload, err := w.render(req, generated)
		if err != nil {
			return nil, nil, err
		}
		name := names.claim(baseName(req.Title, w.naming)) + w.format.Extension()
		sum := sha256.Sum256(payload)
		planned = append(planned, Written{
			Title:      req.Title,
			Path:       filepath.Join(w.Dir(), name),
			DocumentID: req.DocumentID,
			Checksum:   sum[:],
			Bytes:      len(payload),
		})
		payloads = append(payloads, payload)
	}
	return planned, payloads, nil
}

func (w *FileWriter) render(req WriteRequest, generated time.Time) ([]byte, error) {
	body := []byte(req.Body)
	if w.format == FormatHTML {
		html, err := w.renderer.RenderNote(req.Title, req.Body)
		if err != nil {
			return nil, err
		}
		body = html
	}
	if !w.frontMatter {
		return body, nil
	}
	return markdown.BuildFrontMatter(markdown.FrontMatter{
		ID:        req.DocumentID,
		Title:     req.Title,
		Source:    req.Source,
		Tags:      req.Tags,
		Generated: generated,
	}, body)
}

func (w *FileWriter) ensureDir() error {
	dir := w.Dir()
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDirMissing, dir)
	case errors.Is(err, os.ErrNotExist) && w.createDir:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output create %s: %w", dir, err)
		}
		w.logger.Info("output.dir.created", "path", dir)
		return nil
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrOutputDirMissing, dir)
	default:
		return fmt.Errorf("output stat %s: %w", dir, err)
	}
}
