package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block written ahead of a note.
type FrontMatter struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Source    string    `yaml:"source"`
	Tags      []string  `yaml:"tags,omitempty"`
	Generated time.Time `yaml:"generated"`
}

// BuildFrontMatter prefixes body with a "---" delimited YAML block for meta.
func BuildFrontMatter(meta FrontMatter, body []byte) ([]byte, error) {
	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("build frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(header) + len(body) + 9)
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// ParseFrontMatter splits source into its metadata and body. A source without
// a front matter block yields a zero FrontMatter and the full source as body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(meta.Tags) > 0 {
		meta.Tags = append([]string(nil), meta.Tags...)
	}
	return meta, body, nil
}
