package notescmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-notegen/internal/commands"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/internal/notes"
	"github.com/goliatone/go-notegen/internal/tidy"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

const (
	generateOperation = "notes.generate"
	tidyOperation     = "notes.tidy"
)

// NotesService is the subset of notes.Service the handlers drive.
type NotesService interface {
	Generate(ctx context.Context, path string, opts notes.GenerateOptions) (*notes.GenerateResult, error)
	Tidy(ctx context.Context, path string) (*tidy.Result, error)
}

var (
	_ command.Commander[GenerateNotesCommand] = (*GenerateNotesHandler)(nil)
	_ command.Commander[TidySourceCommand]    = (*TidySourceHandler)(nil)
	_ NotesService                            = (*notes.Service)(nil)
)

// GenerateObserver receives the result of every successful generation.
type GenerateObserver func(ctx context.Context, result *notes.GenerateResult)

// GenerateNotesHandler runs note generation through the shared command handler.
type GenerateNotesHandler struct {
	inner *commands.Handler[GenerateNotesCommand]
}

// NewGenerateNotesHandler creates a handler bound to service. observer may be nil.
func NewGenerateNotesHandler(service NotesService, logger interfaces.Logger, observer GenerateObserver, opts ...commands.HandlerOption[GenerateNotesCommand]) *GenerateNotesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg GenerateNotesCommand) error {
		result, err := service.Generate(ctx, msg.Path, notes.GenerateOptions{
			DryRun: msg.DryRun,
			Prune:  msg.Prune,
			Tidy:   msg.Tidy,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"run_id":        result.RunID,
			"written_count": len(result.Written),
			"pruned_count":  len(result.Pruned),
			"dry_run":       result.DryRun,
		}).Info("notes.command.generate.completed")
		if observer != nil {
			observer(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateNotesCommand]{
		commands.WithLogger[GenerateNotesCommand](baseLogger),
		commands.WithOperation[GenerateNotesCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateNotesCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Prune {
				fields["prune"] = true
			}
			if msg.Tidy {
				fields["tidy"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateNotesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateNotesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateNotesCommand].
func (h *GenerateNotesHandler) Execute(ctx context.Context, msg GenerateNotesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// TidySourceHandler strips annotations from a source through the shared command handler.
type TidySourceHandler struct {
	inner *commands.Handler[TidySourceCommand]
}

// NewTidySourceHandler creates a handler bound to service.
func NewTidySourceHandler(service NotesService, logger interfaces.Logger, opts ...commands.HandlerOption[TidySourceCommand]) *TidySourceHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg TidySourceCommand) error {
		result, err := service.Tidy(ctx, msg.Path)
		if err != nil {
			return err
		}
		baseLogger.Info("notes.command.tidy.completed", "backup", result.Backup, "removed", result.Removed)
		return nil
	}

	handlerOpts := []commands.HandlerOption[TidySourceCommand]{
		commands.WithLogger[TidySourceCommand](baseLogger),
		commands.WithOperation[TidySourceCommand](tidyOperation),
		commands.WithMessageFields(func(msg TidySourceCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[TidySourceCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TidySourceHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[TidySourceCommand].
func (h *TidySourceHandler) Execute(ctx context.Context, msg TidySourceCommand) error {
	return h.inner.Execute(ctx, msg)
}
