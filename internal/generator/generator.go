package generator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-notegen/internal/annotate"
	"github.com/goliatone/go-notegen/internal/langtag"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// ErrOrphanAnnotation is returned when prose or a region appears before the
// first title, leaving no document to write into.
var ErrOrphanAnnotation = errors.New("generator: annotation before first title")

// Options carries the generation settings. Table defaults to langtag.Default
// and Logger to a no-op logger.
type Options struct {
	LanguageTag string
	EmitTag     bool
	Table       langtag.Table
	Logger      interfaces.Logger
}

// Generate walks tokens once and returns the documents they describe, in title
// order. lines is the full original listing used for excerpts; it is only read.
//
// When EmitTag is set the language tag is resolved before any token is
// processed, so an unmapped extension fails without producing documents.
func Generate(tokens []annotate.Token, lines []annotate.LineRecord, opts Options) ([]Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	var tag langtag.Tag
	if opts.EmitTag {
		table := opts.Table
		if table == nil {
			table = langtag.Default()
		}
		resolved, err := table.Lookup(opts.LanguageTag)
		if err != nil {
			return nil, err
		}
		tag = resolved
	}

	var (
		docs         []*builder
		current      *builder
		pendingStart int
	)

	for _, token := range tokens {
		if token.Marker != annotate.MarkerTitle && current == nil && token.Marker.Valid() {
			return nil, &annotate.Error{Kind: ErrOrphanAnnotation, Line: token.Line(), Text: token.Text}
		}

		switch token.Marker {
		case annotate.MarkerTitle:
			current = &builder{title: token.Content()}
			docs = append(docs, current)

		case annotate.MarkerProse:
			current.body.WriteString(token.Content())
			current.body.WriteByte('\n')
			if opts.EmitTag && !current.tagPrinted {
				current.body.WriteString(tag.Label)
				current.body.WriteByte('\n')
				current.tagPrinted = true
				current.fence = tag.Fence
			}

		case annotate.MarkerRegionStart:
			pendingStart = token.Position

		case annotate.MarkerRegionEnd:
			current.body.WriteString(fencedBlock(current.fence, Excerpt(lines, pendingStart, token.Position)))

		default:
			logger.Warn("generator.unknown_marker",
				"line", token.Line(),
				"text", token.Text,
				"marker", fmt.Sprintf("%q", rune(token.Marker)),
			)
		}
	}

	out := make([]Document, len(docs))
	for i, doc := range docs {
		out[i] = doc.document()
	}
	return out, nil
}
