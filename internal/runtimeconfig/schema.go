package runtimeconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaDocument []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("schema.json", bytes.NewReader(schemaDocument)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("schema.json")
	})
	return compiledSchema, schemaErr
}

// Issue is a single schema violation in a configuration document.
type Issue struct {
	Location string
	Message  string
}

// SchemaError lists every violation found in a configuration document.
type SchemaError struct {
	Source string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Source, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrConfigInvalid
}

// validateDocument checks a decoded YAML document against the embedded
// schema. The document is round-tripped through JSON so the validator sees
// JSON types.
func validateDocument(source string, document any) error {
	schema, err := configSchema()
	if err != nil {
		return fmt.Errorf("notegen config: compile schema: %w", err)
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, source, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, source, err)
	}

	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaError{Source: source, Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, source, err)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
