package langtag

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultLookup(t *testing.T) {
	table := Default()

	tag, err := table.Lookup("rs")
	if err != nil {
		t.Fatalf("Lookup(rs): %v", err)
	}
	if tag.Label != "#Rust" || tag.Fence != "rust" {
		t.Fatalf("unexpected tag %+v", tag)
	}

	tag, err = table.Lookup(".CPP")
	if err != nil {
		t.Fatalf("Lookup(.CPP): %v", err)
	}
	if tag.Fence != "cpp" {
		t.Fatalf("expected cpp fence, got %q", tag.Fence)
	}
}

func TestLookupUnmapped(t *testing.T) {
	for _, ext := range []string{"py", "", "."} {
		if _, err := Default().Lookup(ext); !errors.Is(err, ErrUnmappedLanguageTag) {
			t.Fatalf("Lookup(%q): expected ErrUnmappedLanguageTag, got %v", ext, err)
		}
	}
}

func TestWithExtendsCopy(t *testing.T) {
	base := Default()
	extended := base.With(map[string]string{
		"py":  "Python",
		".GD": "#GDScript",
		"rs":  "#RustLang",
		"nim": " ",
	})

	if _, err := base.Lookup("py"); err == nil {
		t.Fatal("expected base table to remain unchanged")
	}
	py, err := extended.Lookup("py")
	if err != nil {
		t.Fatalf("Lookup(py): %v", err)
	}
	if py.Label != "#Python" || py.Fence != "python" {
		t.Fatalf("unexpected py tag %+v", py)
	}
	if gd, _ := extended.Lookup("gd"); gd.Fence != "gdscript" {
		t.Fatalf("unexpected gd tag %+v", gd)
	}
	if rs, _ := extended.Lookup("rs"); rs.Label != "#RustLang" {
		t.Fatalf("expected override for rs, got %+v", rs)
	}
	if _, err := extended.Lookup("nim"); err == nil {
		t.Fatal("expected blank label to be skipped")
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"src/main.rs":        "rs",
		"archive.tar.gz":     "gz",
		"dir.with.dots/file": "file",
		"Makefile":           "Makefile",
	}
	for input, want := range cases {
		if got := ExtensionOf(input); got != want {
			t.Fatalf("ExtensionOf(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLookupUnmappedListsMappedExtensions(t *testing.T) {
	table := Table{}.With(map[string]string{"rs": "Rust", ".GO": "Go"})

	_, err := table.Lookup("py")
	if !errors.Is(err, ErrUnmappedLanguageTag) {
		t.Fatalf("expected ErrUnmappedLanguageTag, got %v", err)
	}
	if !strings.Contains(err.Error(), "(mapped: go, rs)") {
		t.Fatalf("expected mapped extensions in %q", err.Error())
	}
}
