package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestDocumentUUIDIsStable(t *testing.T) {
	first := DocumentUUID("src/main.rs", "Title One")
	second := DocumentUUID("./src/main.rs", " Title One ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil document id")
	}
	if first != second {
		t.Fatalf("expected stable id, got %s and %s", first, second)
	}
}

func TestDocumentUUIDSeparatesTitlesAndSources(t *testing.T) {
	base := DocumentUUID("src/main.rs", "Title One")
	if other := DocumentUUID("src/main.rs", "Title Two"); other == base {
		t.Fatal("expected different titles to produce different ids")
	}
	if other := DocumentUUID("src/lib.rs", "Title One"); other == base {
		t.Fatal("expected different sources to produce different ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if id := UUID("  "); id != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s", id)
	}
}

func TestRunIDIsUnique(t *testing.T) {
	if RunID() == RunID() {
		t.Fatal("expected unique run ids")
	}
}
