package notescmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-notegen/internal/commands"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterNoteCommands.
type HandlerSet struct {
	Generate *GenerateNotesHandler
	Tidy     *TidySourceHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	observer     GenerateObserver
	generateOpts []commands.HandlerOption[GenerateNotesCommand]
	tidyOpts     []commands.HandlerOption[TidySourceCommand]
}

// WithGenerateObserver forwards successful generation results to fn.
func WithGenerateObserver(fn GenerateObserver) Option {
	return func(cfg *options) {
		cfg.observer = fn
	}
}

// WithGenerateHandlerOptions forwards options to the generate handler.
func WithGenerateHandlerOptions(opts ...commands.HandlerOption[GenerateNotesCommand]) Option {
	return func(cfg *options) {
		cfg.generateOpts = append(cfg.generateOpts, opts...)
	}
}

// WithTidyHandlerOptions forwards options to the tidy handler.
func WithTidyHandlerOptions(opts ...commands.HandlerOption[TidySourceCommand]) Option {
	return func(cfg *options) {
		cfg.tidyOpts = append(cfg.tidyOpts, opts...)
	}
}

// RegisterNoteCommands builds the note command handlers and registers them
// with reg when it is not nil.
func RegisterNoteCommands(reg CommandRegistry, service NotesService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("notes command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "notes")
	set := &HandlerSet{
		Generate: NewGenerateNotesHandler(service, logger, cfg.observer, cfg.generateOpts...),
		Tidy:     NewTidySourceHandler(service, logger, cfg.tidyOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Generate); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Tidy); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Subscribe registers the handlers with the go-command dispatcher. The
// returned function removes both subscriptions.
func (s *HandlerSet) Subscribe(retries int) func() {
	if retries < 0 {
		retries = 0
	}
	generateSub := dispatcher.SubscribeCommand(s.Generate, runner.WithMaxRetries(retries))
	tidySub := dispatcher.SubscribeCommand(s.Tidy, runner.WithMaxRetries(retries))
	return func() {
		generateSub.Unsubscribe()
		tidySub.Unsubscribe()
	}
}
