// Package tidy removes annotation lines from a source file once its notes
// have been generated, keeping a backup of the original.
package tidy

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-notegen/internal/atomicfile"
)

// BackupSuffix is appended to the source path to name the backup copy.
const BackupSuffix = ".orig"

var (
	// ErrEmptyPrefix is returned when no annotation prefix is supplied.
	ErrEmptyPrefix = errors.New("tidy: annotation prefix is required")
	// ErrSourceChanged is returned when the file on disk no longer matches the
	// checksum of the listing that was validated.
	ErrSourceChanged = errors.New("tidy: source changed since it was read")
)

// Result summarizes a tidy run.
type Result struct {
	Path    string
	Backup  string
	Kept    int
	Removed int
}

// Tidy copies path byte for byte to path+".orig" and then rewrites path
// without the lines that contain prefix. Kept lines retain their original
// terminators. When checksum is set, the file must still hash to it.
func Tidy(ctx context.Context, path, prefix string, checksum []byte) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tidy stat %s: %w", path, err)
	}
	perm := info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tidy read %s: %w", path, err)
	}
	if len(checksum) > 0 {
		if sum := sha256.Sum256(data); !bytes.Equal(sum[:], checksum) {
			return nil, fmt.Errorf("%w: %s", ErrSourceChanged, path)
		}
	}

	backup := path + BackupSuffix
	if err := atomicfile.WriteFile(backup, data, perm); err != nil {
		return nil, fmt.Errorf("tidy backup %s: %w", backup, err)
	}

	result := &Result{Path: path, Backup: backup}
	kept := strip(data, []byte(prefix), result)
	if err := atomicfile.WriteFile(path, kept, perm); err != nil {
		return nil, fmt.Errorf("tidy rewrite %s: %w", path, err)
	}
	return result, nil
}

// strip drops every line containing prefix. A line is matched without its
// "\n" or "\r\n" terminator, the same way the source loader splits lines.
func strip(data, prefix []byte, result *Result) []byte {
	out := make([]byte, 0, len(data))
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		text := bytes.TrimSuffix(bytes.TrimSuffix(line, []byte("\n")), []byte("\r"))
		if bytes.Contains(text, prefix) {
			result.Removed++
			continue
		}
		result.Kept++
		out = append(out, line...)
	}
	return out
}
