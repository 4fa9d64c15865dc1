package runtimeconfig

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvOutputDir    = "NOTEGEN_OUTPUT_DIR"
	EnvGenerateTags = "NOTEGEN_GENERATE_TAGS"
	EnvLogLevel     = "NOTEGEN_LOG_LEVEL"
	EnvFormat       = "NOTEGEN_FORMAT"
)

const (
	configDir      = ".config/notegen"
	legacyFileName = "config.txt"
	yamlFileName   = "config.yaml"
)

// LoadOptions locates configuration sources. Home defaults to the user's home
// directory and LookupEnv to os.LookupEnv.
type LoadOptions struct {
	Home       string
	ConfigPath string
	LookupEnv  func(string) (string, bool)
}

// Sources reports which layers contributed to a loaded Config.
type Sources struct {
	Legacy string
	YAML   string
	Env    []string
}

// Load layers defaults, the legacy config.txt, the YAML file, and the
// environment, in that order. Missing default files are skipped; a missing
// explicit ConfigPath is an error. The result is validated.
func Load(opts LoadOptions) (Config, Sources, error) {
	cfg := DefaultConfig()
	var sources Sources

	home := opts.Home
	if home == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			home = dir
		}
	}

	if home != "" {
		legacyPath := filepath.Join(home, configDir, legacyFileName)
		applied, err := applyLegacyFile(&cfg, legacyPath)
		if err != nil {
			return Config{}, sources, err
		}
		if applied {
			sources.Legacy = legacyPath
		}
	}

	yamlPath := strings.TrimSpace(opts.ConfigPath)
	explicit := yamlPath != ""
	if !explicit && home != "" {
		yamlPath = filepath.Join(home, configDir, yamlFileName)
	}
	if yamlPath != "" {
		applied, err := applyYAMLFile(&cfg, yamlPath, explicit)
		if err != nil {
			return Config{}, sources, err
		}
		if applied {
			sources.YAML = yamlPath
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env, err := applyEnv(&cfg, lookup)
	if err != nil {
		return Config{}, sources, err
	}
	sources.Env = env

	cfg.OutputDir = expandHome(cfg.OutputDir, home)
	if err := cfg.Validate(); err != nil {
		return Config{}, sources, err
	}
	return cfg, sources, nil
}

// ParseLegacy reads the two-line config.txt format: the output directory on
// the first line and the generate-tags flag on the second.
func ParseLegacy(data []byte) (outputDir string, generateTags *bool, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return "", nil, err
	}

	if len(lines) > 0 {
		outputDir = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		value, err := strconv.ParseBool(strings.TrimSpace(lines[1]))
		if err != nil {
			return "", nil, fmt.Errorf("generate tags flag %q: %w", lines[1], err)
		}
		generateTags = &value
	}
	return outputDir, generateTags, nil
}

func applyLegacyFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("notegen config: read %s: %w", path, err)
	}

	outputDir, generateTags, err := ParseLegacy(data)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}
	cfg.OutputDir = outputDir
	if generateTags != nil {
		cfg.GenerateTags = *generateTags
	}
	return true, nil
}

func applyYAMLFile(cfg *Config, path string, required bool) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("notegen config: read %s: %w", path, err)
	}
	if err := DecodeYAML(cfg, path, data); err != nil {
		return false, err
	}
	return true, nil
}

// DecodeYAML validates data against the configuration schema and overlays it
// onto cfg. Keys absent from data leave cfg untouched.
func DecodeYAML(cfg *Config, source string, data []byte) error {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, source, err)
	}
	if document == nil {
		return nil
	}
	if err := validateDocument(source, document); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, source, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) ([]string, error) {
	var applied []string
	if value, ok := lookup(EnvOutputDir); ok {
		cfg.OutputDir = strings.TrimSpace(value)
		applied = append(applied, EnvOutputDir)
	}
	if value, ok := lookup(EnvGenerateTags); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrConfigInvalid, EnvGenerateTags, value)
		}
		cfg.GenerateTags = parsed
		applied = append(applied, EnvGenerateTags)
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		cfg.Logging.Level = strings.TrimSpace(value)
		applied = append(applied, EnvLogLevel)
	}
	if value, ok := lookup(EnvFormat); ok && strings.TrimSpace(value) != "" {
		cfg.Format = strings.ToLower(strings.TrimSpace(value))
		applied = append(applied, EnvFormat)
	}
	return applied, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
