package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-notegen/internal/markdown"
)

// Prune removes notes in the output directory whose front matter names source
// and whose path is not in keep. It returns the removed paths, sorted.
func (w *FileWriter) Prune(ctx context.Context, source string, keep []string) ([]string, error) {
	if !w.frontMatter {
		return nil, ErrFrontMatterRequired
	}

	kept := make(map[string]struct{}, len(keep))
	for _, path := range keep {
		kept[filepath.Clean(path)] = struct{}{}
	}

	entries, err := os.ReadDir(w.Dir())
	if err != nil {
		return nil, fmt.Errorf("output prune %s: %w", w.Dir(), err)
	}

	var removed []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return removed, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".html" {
			continue
		}

		path := filepath.Join(w.Dir(), entry.Name())
		if _, ok := kept[filepath.Clean(path)]; ok {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return removed, fmt.Errorf("output prune read %s: %w", path, err)
		}
		meta, _, err := markdown.ParseFrontMatter(data)
		if err != nil || meta.Source != source {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("output prune remove %s: %w", path, err)
		}
		w.logger.Info("output.document.pruned", "path", path, "source", source)
		removed = append(removed, path)
	}

	sort.Strings(removed)
	return removed, nil
}
