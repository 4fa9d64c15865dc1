// Package source turns annotated source files into positioned line listings.
package source

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-notegen/internal/annotate"
	"github.com/goliatone/go-notegen/internal/langtag"
)

// ErrEmptyPath is returned when Load is called without a path.
var ErrEmptyPath = errors.New("source: path is required")

// Listing is a loaded source file. Lines carries 0-based positions in file
// order; Checksum is the SHA-256 of the bytes the lines were split from.
type Listing struct {
	Path     string
	Ext      string
	Lines    []annotate.LineRecord
	Checksum []byte
}

// Loader reads listings from a filesystem. A nil filesystem reads straight
// from the operating system, which accepts absolute paths.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem}
}

// NewOSLoader constructs a Loader that reads from the host filesystem.
func NewOSLoader() *Loader {
	return &Loader{}
}

// Load reads path and splits it into line records.
func (l *Loader) Load(ctx context.Context, name string) (*Listing, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPath
	}

	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	lines, err := ReadLines(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("source split %s: %w", name, err)
	}

	sum := sha256.Sum256(data)
	return &Listing{
		Path:     name,
		Ext:      langtag.ExtensionOf(name),
		Lines:    lines,
		Checksum: sum[:],
	}, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if l == nil || l.fs == nil {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("source read %s: %w", name, err)
		}
		return data, nil
	}

	rel := path.Clean(filepath.ToSlash(name))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("source read %s: %w", rel, err)
	}
	return data, nil
}

// ReadLines splits r on '\n' and numbers the lines from 0. A trailing '\r'
// is dropped from each line, and a final newline does not start a new line.
func ReadLines(r io.Reader) ([]annotate.LineRecord, error) {
	reader := bufio.NewReader(r)
	var lines []annotate.LineRecord
	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			lines = append(lines, annotate.LineRecord{Text: text, Position: len(lines)})
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
