package annotate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAnnotationsFound is returned when a source has no annotation lines.
	ErrNoAnnotationsFound = errors.New("annotate: no annotations found")
	// ErrInvalidMarker is returned when the character after the prefix is not a known marker.
	ErrInvalidMarker = errors.New("annotate: invalid marker")
	// ErrMissingTitle is returned when annotations exist but none of them is a title.
	ErrMissingTitle = errors.New("annotate: missing title")
	// ErrUnmatchedCloser is returned for a region end with no open region.
	ErrUnmatchedCloser = errors.New("annotate: unmatched region closer")
	// ErrUnclosedRegion is returned when a region is opened while another is open, or never closed.
	ErrUnclosedRegion = errors.New("annotate: unclosed region")
)

// Error carries the position of a lexing or region failure. Line is 1-based.
type Error struct {
	Kind error
	Line int
	Text string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidMarker:
		return fmt.Sprintf("invalid notegen symbol %q on line %d", e.Text, e.Line)
	case ErrUnmatchedCloser:
		return fmt.Sprintf("missing opening bracket for bracket on line %d", e.Line)
	case ErrUnclosedRegion:
		return fmt.Sprintf("missing closing bracket for bracket on line %d", e.Line)
	case ErrMissingTitle:
		return "file contains notegen symbols but no title; mark the document title with a title annotation"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%v on line %d", e.Kind, e.Line)
	}
	return e.Kind.Error()
}

// Unwrap exposes the error kind so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, record LineRecord) *Error {
	return &Error{
		Kind: kind,
		Line: record.Line(),
		Text: record.Text,
	}
}

// LineOf returns the 1-based line carried by err, or 0 when none is attached.
func LineOf(err error) int {
	var annotated *Error
	if errors.As(err, &annotated) && annotated != nil {
		return annotated.Line
	}
	return 0
}
