package runtimeconfig

import "strings"

// Overrides carries command line values. Nil fields leave the loaded value
// in place.
type Overrides struct {
	OutputDir    *string
	GenerateTags *bool
	Tidy         *bool
	Format       *string
	FrontMatter  *bool
	Prune        *bool
	LogLevel     *string
}

// Apply returns cfg with every set override applied, validated again.
func (cfg Config) Apply(o Overrides) (Config, error) {
	if o.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*o.OutputDir)
	}
	if o.GenerateTags != nil {
		cfg.GenerateTags = *o.GenerateTags
	}
	if o.Tidy != nil {
		cfg.Tidy = *o.Tidy
	}
	if o.Format != nil {
		cfg.Format = strings.ToLower(strings.TrimSpace(*o.Format))
	}
	if o.FrontMatter != nil {
		cfg.FrontMatter = *o.FrontMatter
	}
	if o.Prune != nil {
		cfg.Prune = *o.Prune
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = strings.TrimSpace(*o.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
