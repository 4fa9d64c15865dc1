package testsupport

import (
	"os"
	"strings"
	"testing"
)

// LoadFixture reads path or fails the test.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// LoadGolden reads a golden file with Windows line endings normalised.
func LoadGolden(t testing.TB, path string) string {
	t.Helper()
	return strings.ReplaceAll(string(LoadFixture(t, path)), "\r\n", "\n")
}
