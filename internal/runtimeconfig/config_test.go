package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/goliatone/go-notegen/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Format = "pdf"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsEmptyPrefix(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Prefix = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsBlankLanguageLabel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages = map[string]string{"py": "#"}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestConfigValidate_PruneRequiresFrontMatter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Prune = true

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPruneRequiresFrontMatter) || !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrPruneRequiresFrontMatter, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	dir := "notes"
	tags := true
	format := "HTML"

	cfg, err := runtimeconfig.DefaultConfig().Apply(runtimeconfig.Overrides{
		OutputDir:    &dir,
		GenerateTags: &tags,
		Format:       &format,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.OutputDir != "notes" || !cfg.GenerateTags || cfg.Format != "html" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	prune := true
	if _, err := cfg.Apply(runtimeconfig.Overrides{Prune: &prune}); !errors.Is(err, runtimeconfig.ErrPruneRequiresFrontMatter) {
		t.Fatalf("expected ErrPruneRequiresFrontMatter, got %v", err)
	}
}

func TestParseLegacy(t *testing.T) {
	dir, tags, err := runtimeconfig.ParseLegacy([]byte("/home/me/notes\r\ntrue\n"))
	if err != nil {
		t.Fatalf("ParseLegacy: %v", err)
	}
	if dir != "/home/me/notes" || tags == nil || !*tags {
		t.Fatalf("unexpected legacy values %q %v", dir, tags)
	}

	dir, tags, err = runtimeconfig.ParseLegacy([]byte("notes\n"))
	if err != nil {
		t.Fatalf("ParseLegacy single line: %v", err)
	}
	if dir != "notes" || tags != nil {
		t.Fatalf("unexpected single line values %q %v", dir, tags)
	}

	if _, _, err := runtimeconfig.ParseLegacy([]byte("notes\nmaybe\n")); err == nil {
		t.Fatal("expected error for invalid flag")
	}
}

func writeConfigFile(t *testing.T, home, name, content string) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "notegen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	cfg, sources, err := runtimeconfig.Load(runtimeconfig.LoadOptions{Home: t.TempDir(), LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "" || cfg.Format != "markdown" || cfg.Prefix != "//@" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if sources.Legacy != "" || sources.YAML != "" || len(sources.Env) != 0 {
		t.Fatalf("expected no sources, got %+v", sources)
	}
}

func TestLoad_LayersLegacyYAMLAndEnv(t *testing.T) {
	home := t.TempDir()
	legacy := writeConfigFile(t, home, "config.txt", "~/legacy-notes\ntrue\n")
	yamlPath := writeConfigFile(t, home, "config.yaml", `
format: html
front_matter: true
languages:
  py: Python
manifest:
  enabled: true
logging:
  provider: gologger
  format: json
`)

	env := map[string]string{runtimeconfig.EnvLogLevel: "debug"}
	cfg, sources, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		Home: home,
		LookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OutputDir != filepath.Join(home, "legacy-notes") {
		t.Fatalf("expected legacy output dir, got %q", cfg.OutputDir)
	}
	if !cfg.GenerateTags {
		t.Fatal("expected generate tags from legacy file")
	}
	if cfg.Format != "html" || !cfg.FrontMatter || !cfg.Manifest.Enabled {
		t.Fatalf("expected yaml values, got %+v", cfg)
	}
	if cfg.Languages["py"] != "Python" {
		t.Fatalf("expected language override, got %v", cfg.Languages)
	}
	if cfg.Logging.Provider != "gologger" || cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Prefix != "//@" {
		t.Fatalf("expected default prefix to survive, got %q", cfg.Prefix)
	}
	if sources.Legacy != legacy || sources.YAML != yamlPath || !slices.Equal(sources.Env, []string{runtimeconfig.EnvLogLevel}) {
		t.Fatalf("unexpected sources %+v", sources)
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, "config.txt", "legacy\nfalse\n")

	env := map[string]string{
		runtimeconfig.EnvOutputDir:    "from-env",
		runtimeconfig.EnvGenerateTags: "true",
		runtimeconfig.EnvFormat:       "HTML",
	}
	cfg, _, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		Home: home,
		LookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "from-env" || !cfg.GenerateTags || cfg.Format != "html" {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}

func TestLoad_SchemaRejectsUnknownKeys(t *testing.T) {
	home := t.TempDir()
	path := writeConfigFile(t, home, "config.yaml", "format: markdown\ncolour: blue\n")

	_, _, err := runtimeconfig.Load(runtimeconfig.LoadOptions{Home: home, LookupEnv: noEnv})
	if !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	var schemaErr *runtimeconfig.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
	if schemaErr.Source != path || len(schemaErr.Issues) == 0 {
		t.Fatalf("unexpected schema error %+v", schemaErr)
	}
}

func TestLoad_SchemaRejectsWrongTypes(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, "config.yaml", "generate_tags: sometimes\n")

	if _, _, err := runtimeconfig.Load(runtimeconfig.LoadOptions{Home: home, LookupEnv: noEnv}); !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	_, _, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		Home:       t.TempDir(),
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		LookupEnv:  noEnv,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_InvalidLegacyFlag(t *testing.T) {
	home := t.TempDir()
	writeConfigFile(t, home, "config.txt", "notes\nnope\n")

	if _, _, err := runtimeconfig.Load(runtimeconfig.LoadOptions{Home: home, LookupEnv: noEnv}); !errors.Is(err, runtimeconfig.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
