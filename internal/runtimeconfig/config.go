package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrConfigInvalid wraps every validation failure reported by Validate and Load.
var ErrConfigInvalid = errors.New("notegen config: invalid configuration")

// ErrPruneRequiresFrontMatter ensures pruning can identify generated notes.
var ErrPruneRequiresFrontMatter = errors.New("notegen config: prune requires front matter to be enabled")

var ErrLoggingProviderUnknown = errors.New("notegen config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("notegen config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("notegen config: logging format is invalid")

// Config holds every setting a notegen run consumes.
type Config struct {
	OutputDir       string            `yaml:"output_dir"`
	CreateOutputDir bool              `yaml:"create_output_dir"`
	GenerateTags    bool              `yaml:"generate_tags"`
	Tidy            bool              `yaml:"tidy"`
	Prefix          string            `yaml:"prefix"`
	Filenames       string            `yaml:"filenames"`
	Format          string            `yaml:"format"`
	FrontMatter     bool              `yaml:"front_matter"`
	Prune           bool              `yaml:"prune"`
	Languages       map[string]string `yaml:"languages"`
	Markdown        MarkdownConfig    `yaml:"markdown"`
	Manifest        ManifestConfig    `yaml:"manifest"`
	Logging         LoggingConfig     `yaml:"logging"`
}

// MarkdownConfig tunes HTML rendering when Format is html.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// ManifestConfig selects where generation history is recorded. An empty DSN
// with Enabled set keeps history in memory for the current process.
type ManifestConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig mirrors the behaviour of running notegen without any
// configuration file: notes land in the working directory as Markdown.
func DefaultConfig() Config {
	return Config{
		Prefix:    "//@",
		Filenames: "title",
		Format:    "markdown",
		Languages: map[string]string{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate checks field values and cross-field consistency.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Prefix, validation.Required, validation.By(func(value any) error {
			prefix, _ := value.(string)
			if strings.TrimSpace(prefix) != prefix {
				return validation.NewError("notegen.config.prefix_whitespace", "prefix must not carry surrounding whitespace")
			}
			return nil
		})),
		validation.Field(&cfg.Filenames, validation.In("title", "slug")),
		validation.Field(&cfg.Format, validation.In("markdown", "html")),
		validation.Field(&cfg.Languages, validation.By(validateLanguages)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	if cfg.Prune && !cfg.FrontMatter {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, ErrPruneRequiresFrontMatter)
	}
	if err := cfg.Logging.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

func validateLanguages(value any) error {
	languages, _ := value.(map[string]string)
	for ext, label := range languages {
		if strings.TrimSpace(ext) == "" {
			return validation.NewError("notegen.config.language_extension_required", "language extension must not be empty")
		}
		if strings.Trim(strings.TrimSpace(label), "#") == "" {
			return validation.NewError("notegen.config.language_label_required", fmt.Sprintf("language label for %q must not be empty", ext))
		}
	}
	return nil
}

func (cfg LoggingConfig) validate() error {
	provider := normalizeProvider(cfg.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
	if level := strings.TrimSpace(cfg.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "console"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
