package generator

import (
	"strings"

	"github.com/goliatone/go-notegen/internal/annotate"
)

// Excerpt returns every line whose position lies strictly between start and
// end, in listing order, each terminated by a newline.
func Excerpt(lines []annotate.LineRecord, start, end int) string {
	var out strings.Builder
	for _, line := range lines {
		if line.Position > start && line.Position < end {
			out.WriteString(line.Text)
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func fencedBlock(fence, excerpt string) string {
	var out strings.Builder
	out.Grow(len(excerpt) + len(fence) + 10)
	out.WriteString("\n```")
	out.WriteString(fence)
	out.WriteByte('\n')
	out.WriteString(excerpt)
	out.WriteString("```\n")
	return out.String()
}
