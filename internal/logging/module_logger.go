package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-notegen/pkg/interfaces"
)

const (
	rootModule      = "notegen"
	sourceModule    = "notegen.source"
	generatorModule = "notegen.generator"
	outputModule    = "notegen.output"
	tidyModule      = "notegen.tidy"
	manifestModule  = "notegen.manifest"
)

const (
	fieldSourcePath = "source_path"
	fieldRunID      = "run_id"
	fieldAction     = "action"
)

// ModuleLogger returns a module-scoped logger, falling back to a no-op logger
// when provider is nil. The module name is attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SourceLogger returns the logger used while loading source listings.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// GeneratorLogger returns the logger used by the document generator.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// OutputLogger returns the logger used when writing and pruning documents.
func OutputLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outputModule)
}

// TidyLogger returns the logger used when rewriting sources.
func TidyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tidyModule)
}

// ManifestLogger returns the logger used by manifest repositories.
func ManifestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, manifestModule)
}

// WithRunContext enriches logger with the source path, run identifier, and
// action of the current run. Empty values are skipped.
func WithRunContext(logger interfaces.Logger, path, runID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
