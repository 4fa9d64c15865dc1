package output

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

// Naming selects how note titles become file names.
type Naming string

const (
	NamingTitle Naming = "title"
	NamingSlug  Naming = "slug"
)

const fallbackName = "untitled"

var titleReplacer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

func baseName(title string, naming Naming) string {
	var name string
	switch naming {
	case NamingSlug:
		if normalized, err := slug.Normalize(title); err == nil {
			name = normalized
		}
	default:
		name = strings.TrimSpace(titleReplacer.Replace(title))
	}
	if name == "" || name == "." || name == ".." {
		return fallbackName
	}
	return name
}

// nameSet hands out unique names within a single run.
type nameSet map[string]int

func (s nameSet) claim(name string) string {
	count := s[name]
	s[name] = count + 1
	if count == 0 {
		return name
	}
	for n := count + 1; ; n++ {
		candidate := name + "-" + strconv.Itoa(n)
		if _, taken := s[candidate]; !taken {
			s[candidate] = 1
			return candidate
		}
	}
}
