package tidy

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-notegen/internal/annotate"
)

func writeSource(t *testing.T, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestTidyStripsAnnotationsAndKeepsBackup(t *testing.T) {
	original := "//@@ Title One\n//@ Hello\n//@{\nfn a(){}\n//@}"
	path := writeSource(t, "main.rs", original, 0o600)

	result, err := Tidy(context.Background(), path, annotate.DefaultPrefix, nil)
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	if result.Kept != 1 || result.Removed != 4 {
		t.Fatalf("unexpected result %+v", result)
	}

	backup, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != original {
		t.Fatalf("unexpected backup %q", backup)
	}

	tidied, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if string(tidied) != "fn a(){}\n" {
		t.Fatalf("unexpected tidied source %q", tidied)
	}

	for _, name := range []string{path, path + BackupSuffix} {
		info, err := os.Stat(name)
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("expected %s to keep permissions, got %v", name, info.Mode().Perm())
		}
	}
}

func TestTidyKeepsCRLFAndMissingFinalNewline(t *testing.T) {
	original := "//@@ T\r\nfn a() {}\r\n//@ note\r\nlast"
	path := writeSource(t, "main.rs", original, 0o644)

	if _, err := Tidy(context.Background(), path, annotate.DefaultPrefix, nil); err != nil {
		t.Fatalf("Tidy: %v", err)
	}

	backup, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != original {
		t.Fatalf("backup differs from original: %q", backup)
	}

	tidied, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if string(tidied) != "fn a() {}\r\nlast" {
		t.Fatalf("unexpected tidied source %q", tidied)
	}
}

func TestTidyRemovesLinesContainingPrefixAnywhere(t *testing.T) {
	path := writeSource(t, "main.go", "x := 1 //@ trailing\ny := 2\n", 0o644)
	if _, err := Tidy(context.Background(), path, "//@", nil); err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	tidied, _ := os.ReadFile(path)
	if string(tidied) != "y := 2\n" {
		t.Fatalf("unexpected tidied source %q", tidied)
	}
}

func TestTidyRefusesChangedSource(t *testing.T) {
	original := "//@@ T\nfn a() {}\n"
	path := writeSource(t, "main.rs", original, 0o644)
	stale := sha256.Sum256([]byte(strings.ToUpper(original)))

	if _, err := Tidy(context.Background(), path, "//@", stale[:]); !errors.Is(err, ErrSourceChanged) {
		t.Fatalf("expected ErrSourceChanged, got %v", err)
	}
	if _, err := os.Stat(path + BackupSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no backup, got %v", err)
	}

	current := sha256.Sum256([]byte(original))
	if _, err := Tidy(context.Background(), path, "//@", current[:]); err != nil {
		t.Fatalf("Tidy with matching checksum: %v", err)
	}
}

func TestTidyRequiresPrefix(t *testing.T) {
	if _, err := Tidy(context.Background(), "x", "", nil); !errors.Is(err, ErrEmptyPrefix) {
		t.Fatalf("expected ErrEmptyPrefix, got %v", err)
	}
}

func TestTidyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.rs")
	if _, err := Tidy(context.Background(), path, "//@", nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
