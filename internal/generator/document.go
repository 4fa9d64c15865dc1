package generator

import "strings"

// Document is one generated note. Body accumulates while the generator walks
// the tokens that follow the document's title.
type Document struct {
	Title string
	Body  string
}

type builder struct {
	title      string
	body       strings.Builder
	tagPrinted bool
	fence      string
}

func (b *builder) document() Document {
	return Document{
		Title: b.title,
		Body:  b.body.String(),
	}
}
