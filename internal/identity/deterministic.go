// Package identity derives stable identifiers for sources and generated notes.
package identity

import (
	"path/filepath"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "notegen:"

// UUID derives a deterministic UUID from key. Keys are namespaced by the
// helpers below; an empty key yields uuid.Nil.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return id
}

// SourceUUID identifies a source file by its cleaned, slash separated path.
func SourceUUID(path string) uuid.UUID {
	return UUID(namespace + "source:" + canonicalPath(path))
}

// DocumentUUID identifies the note titled title generated from path. The same
// pair always maps to the same ID across runs.
func DocumentUUID(path, title string) uuid.UUID {
	return UUID(namespace + "document:" + SourceUUID(path).String() + ":" + strings.TrimSpace(title))
}

// RunID returns a fresh identifier for one generation run.
func RunID() string {
	return uuid.NewString()
}

func canonicalPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}
