package annotate

import "strings"

// DefaultPrefix is the annotation prefix recognised when no override is supplied.
const DefaultPrefix = "//@"

// LineRecord is a single source line paired with its 0-based position in the file.
type LineRecord struct {
	Text     string
	Position int
}

// Line returns the 1-based line number used in diagnostics.
func (r LineRecord) Line() int {
	return r.Position + 1
}

// Marker selects what an annotation token does.
type Marker byte

const (
	MarkerTitle       Marker = '@'
	MarkerProse       Marker = ' '
	MarkerRegionStart Marker = '{'
	MarkerRegionEnd   Marker = '}'
)

// Valid reports whether the marker belongs to the annotation alphabet.
func (m Marker) Valid() bool {
	switch m {
	case MarkerTitle, MarkerProse, MarkerRegionStart, MarkerRegionEnd:
		return true
	default:
		return false
	}
}

// String renders the marker name used in logs.
func (m Marker) String() string {
	switch m {
	case MarkerTitle:
		return "title"
	case MarkerProse:
		return "prose"
	case MarkerRegionStart:
		return "region_start"
	case MarkerRegionEnd:
		return "region_end"
	default:
		return "unknown"
	}
}

// Token is a lexed annotation line. Text holds the trimmed line including the
// prefix; Position is the line's original 0-based position.
type Token struct {
	LineRecord
	Marker Marker
	prefix string
}

// Content returns the text following the prefix and marker, left-trimmed.
func (t Token) Content() string {
	offset := len(t.prefix) + 1
	if offset > len(t.Text) {
		return ""
	}
	return strings.TrimLeft(t.Text[offset:], " \t")
}

// Prefix returns the annotation prefix the token was lexed with.
func (t Token) Prefix() string {
	return t.prefix
}

// NewToken builds a token from a trimmed annotation line. It is mainly useful
// for callers that construct token streams by hand.
func NewToken(text string, position int, prefix string) Token {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return newToken(text, text, position, prefix)
}

// newToken reads the marker from raw, which may still carry trailing
// whitespace, so a bare "//@ " stays a prose line once text is trimmed.
func newToken(raw, text string, position int, prefix string) Token {
	var marker Marker
	if len(raw) > len(prefix) {
		marker = Marker(raw[len(prefix)])
	}
	return Token{
		LineRecord: LineRecord{Text: text, Position: position},
		Marker:     marker,
		prefix:     prefix,
	}
}
