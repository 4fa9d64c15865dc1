// Package notescmd exposes note generation and tidy as go-command messages.
package notescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	generateNotesMessageType = "notegen.notes.generate"
	tidySourceMessageType    = "notegen.notes.tidy"
)

// GenerateNotesCommand generates notes from the annotations in Path.
type GenerateNotesCommand struct {
	// Path is the annotated source file.
	Path string `json:"path"`
	// DryRun renders and names notes without writing them.
	DryRun bool `json:"dry_run,omitempty"`
	// Prune removes notes generated from Path by earlier runs that this run did not write.
	Prune bool `json:"prune,omitempty"`
	// Tidy strips annotation lines from Path once notes are written.
	Tidy bool `json:"tidy,omitempty"`
}

// Type implements command.Message.
func (GenerateNotesCommand) Type() string { return generateNotesMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd GenerateNotesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requirePath(generateNotesMessageType))),
	)
}

// TidySourceCommand strips annotation lines from Path without generating notes.
type TidySourceCommand struct {
	Path string `json:"path"`
}

// Type implements command.Message.
func (TidySourceCommand) Type() string { return tidySourceMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd TidySourceCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requirePath(tidySourceMessageType))),
	)
}

func requirePath(messageType string) validation.RuleFunc {
	return func(value any) error {
		path, _ := value.(string)
		if strings.TrimSpace(path) == "" {
			return validation.NewError(messageType+".path_required", "path is required")
		}
		return nil
	}
}
