package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Team997Coders/frcInstallTool/internal/logger"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}
	return Config{
		UserAgent:      DefaultUserAgent,
		Git:            "git",
		Pip:            []string{python, "-m", "pip"},
		ArchiveFailure: ArchiveFailureInvalid,
		Progress:       ProgressPercent,
	}
}

// Load reads the configuration file at path on top of Default.
// An empty path returns the defaults unchanged. The format follows the file
// extension: .yaml/.yml through yaml.v3, .toml through BurntSushi/toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded config from %s: %+v\n", path, cfg)
	return cfg, nil
}

// Validate rejects values the rest of the tool does not understand.
func (c Config) Validate() error {
	switch c.ArchiveFailure {
	case ArchiveFailureInvalid, ArchiveFailureFatal:
	default:
		return fmt.Errorf("archive_failure must be %q or %q, got %q", ArchiveFailureInvalid, ArchiveFailureFatal, c.ArchiveFailure)
	}
	switch c.Progress {
	case ProgressPercent, ProgressBar:
	default:
		return fmt.Errorf("progress must be %q or %q, got %q", ProgressPercent, ProgressBar, c.Progress)
	}
	if c.Git == "" {
		return fmt.Errorf("git command must not be empty")
	}
	if len(c.Pip) == 0 || c.Pip[0] == "" {
		return fmt.Errorf("pip command must not be empty")
	}
	return nil
}
