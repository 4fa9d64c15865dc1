// Package markdown renders generated notes to HTML and manages the YAML front
// matter block that ties a written note back to its source file.
package markdown
