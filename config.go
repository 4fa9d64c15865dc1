package notegen

import "github.com/goliatone/go-notegen/internal/runtimeconfig"

var (
	ErrConfigInvalid            = runtimeconfig.ErrConfigInvalid
	ErrPruneRequiresFrontMatter = runtimeconfig.ErrPruneRequiresFrontMatter
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	ManifestConfig = runtimeconfig.ManifestConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	LoadOptions    = runtimeconfig.LoadOptions
	ConfigSources  = runtimeconfig.Sources
	Overrides      = runtimeconfig.Overrides
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads config.txt, config.yaml and the environment on top of the defaults.
func LoadConfig(opts LoadOptions) (Config, ConfigSources, error) {
	return runtimeconfig.Load(opts)
}
