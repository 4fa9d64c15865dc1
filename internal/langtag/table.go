// Package langtag maps source file extensions to the "#Language" labels
// written into generated notes and the fence identifiers used for excerpts.
package langtag

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnmappedLanguageTag is returned when an extension has no table entry.
var ErrUnmappedLanguageTag = errors.New("langtag: unmapped language tag")

// Tag is a single table entry.
type Tag struct {
	Extension string
	Label     string
	Fence     string
}

// Table maps lower-case extensions (without the dot) to tags.
type Table map[string]Tag

var defaultLabels = map[string]string{
	"c":      "#C",
	"h":      "#C",
	"cc":     "#Cpp",
	"cpp":    "#Cpp",
	"cxx":    "#Cpp",
	"hpp":    "#Cpp",
	"cs":     "#CSharp",
	"dart":   "#Dart",
	"go":     "#Go",
	"groovy": "#Groovy",
	"java":   "#Java",
	"js":     "#JavaScript",
	"jsx":    "#JavaScript",
	"mjs":    "#JavaScript",
	"kt":     "#Kotlin",
	"kts":    "#Kotlin",
	"php":    "#PHP",
	"proto":  "#Protobuf",
	"rs":     "#Rust",
	"scala":  "#Scala",
	"sol":    "#Solidity",
	"swift":  "#Swift",
	"ts":     "#TypeScript",
	"tsx":    "#TypeScript",
	"v":      "#V",
	"zig":    "#Zig",
}

// Default returns a fresh copy of the built-in table.
func Default() Table {
	table := make(Table, len(defaultLabels))
	for ext, label := range defaultLabels {
		table[ext] = NewTag(ext, label)
	}
	return table
}

// NewTag builds a tag whose fence identifier is the lower-cased label with
// its leading marker character removed.
func NewTag(ext, label string) Tag {
	label = strings.TrimSpace(label)
	if label != "" && !strings.HasPrefix(label, "#") {
		label = "#" + label
	}
	return Tag{
		Extension: normalizeExtension(ext),
		Label:     label,
		Fence:     strings.ToLower(strings.TrimPrefix(label, "#")),
	}
}

// Lookup resolves ext, which may carry a leading dot and any case. The
// error for an unmapped extension lists the mapped ones.
func (t Table) Lookup(ext string) (Tag, error) {
	key := normalizeExtension(ext)
	if tag, ok := t[key]; ok && key != "" {
		return tag, nil
	}
	return Tag{}, fmt.Errorf("%w: %q (mapped: %s)", ErrUnmappedLanguageTag, ext, strings.Join(t.Extensions(), ", "))
}

// With returns a copy of the table extended with the supplied
// extension -> label pairs. Entries with an empty label are skipped.
func (t Table) With(labels map[string]string) Table {
	out := make(Table, len(t)+len(labels))
	for key, tag := range t {
		out[key] = tag
	}
	for ext, label := range labels {
		key := normalizeExtension(ext)
		if key == "" || strings.TrimSpace(label) == "" {
			continue
		}
		out[key] = NewTag(key, label)
	}
	return out
}

// Extensions lists the mapped extensions in sorted order.
func (t Table) Extensions() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExtensionOf returns the text after the last dot of the file's base name.
// A name without a dot is returned whole.
func ExtensionOf(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		return base[idx+1:]
	}
	return base
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
