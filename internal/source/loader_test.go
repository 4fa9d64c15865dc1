package source

import (
	"context"
	"crypto/sha256"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoaderLoadsListing(t *testing.T) {
	content := "//@@ Title One\r\n//@ Hello\nfn a(){}\n"
	fsys := fstest.MapFS{
		"src/main.rs": &fstest.MapFile{Data: []byte(content)},
	}

	listing, err := NewLoader(fsys).Load(context.Background(), "src/main.rs")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if listing.Ext != "rs" {
		t.Fatalf("expected ext rs, got %q", listing.Ext)
	}
	sum := sha256.Sum256([]byte(content))
	if string(listing.Checksum) != string(sum[:]) {
		t.Fatalf("checksum mismatch")
	}

	want := []string{"//@@ Title One", "//@ Hello", "fn a(){}"}
	if len(listing.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(listing.Lines))
	}
	for i, line := range listing.Lines {
		if line.Position != i || line.Text != want[i] {
			t.Fatalf("line %d = %+v, want %q", i, line, want[i])
		}
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}).Load(context.Background(), "missing.go")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoaderRejectsEmptyPath(t *testing.T) {
	if _, err := NewOSLoader().Load(context.Background(), " "); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewOSLoader().Load(ctx, "main.go"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOSLoaderReadsAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.go")
	if err := os.WriteFile(path, []byte("//@@ Lib\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	listing, err := NewOSLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(listing.Lines) != 1 || listing.Lines[0].Text != "//@@ Lib" || listing.Ext != "go" {
		t.Fatalf("unexpected listing %+v", listing)
	}
}

func TestReadLinesHandlesLongLinesAndMissingNewline(t *testing.T) {
	long := strings.Repeat("x", 200_000)
	lines, err := ReadLines(strings.NewReader("a\n\n" + long))
	if err != nil {
		t.Fatalf("read lines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1].Text != "" || lines[1].Position != 1 {
		t.Fatalf("expected empty second line, got %+v", lines[1])
	}
	if lines[2].Text != long {
		t.Fatalf("long line truncated to %d bytes", len(lines[2].Text))
	}
}
