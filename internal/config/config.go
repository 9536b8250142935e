package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Engine names accepted by the "engine" setting.
const (
	EngineScript  = "script"
	EnginePipe    = "pipe"
	EngineWhisper = "whisper"
)

// Config holds the resolved runtime settings.
type Config struct {
	DatabasePath string
	ExportDir    string

	// Engine selects the speech backend: script, pipe, or whisper.
	Engine string

	// RecognizerCommand is the pipe engine's subprocess, split into
	// argv. Empty means the pipe engine is unavailable.
	RecognizerCommand []string

	OpenAIAPIKey string
	OpenAIModel  string

	// Locale is the ISO 639-1 language hint for recognition. Empty
	// lets the engine auto-detect.
	Locale string

	// SummaryDelay paces the built-in extractive summarizer.
	SummaryDelay time.Duration
}

type fileConfig struct {
	DatabasePath      string  `toml:"database_path"`
	ExportDir         string  `toml:"export_dir"`
	Engine            string  `toml:"engine"`
	RecognizerCommand string  `toml:"recognizer_command"`
	OpenAIAPIKey      string  `toml:"openai_api_key"`
	OpenAIModel       string  `toml:"openai_model"`
	Locale            string  `toml:"locale"`
	SummaryDelaySecs  float64 `toml:"summary_delay_seconds"`
}

// Load reads config.toml (if present), applies STENOGRAM_* environment
// overrides, and fills in defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Engine:       EnginePipe,
		ExportDir:    os.TempDir(),
		SummaryDelay: 1500 * time.Millisecond,
	}

	if path := configFilePath(); path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		applyFile(cfg, fc)
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.DatabasePath != "" {
		cfg.DatabasePath = expandTilde(fc.DatabasePath)
	}
	if fc.ExportDir != "" {
		cfg.ExportDir = expandTilde(fc.ExportDir)
	}
	if fc.Engine != "" {
		cfg.Engine = fc.Engine
	}
	if fc.RecognizerCommand != "" {
		cfg.RecognizerCommand = strings.Fields(fc.RecognizerCommand)
	}
	cfg.OpenAIAPIKey = fc.OpenAIAPIKey
	if fc.OpenAIModel != "" {
		cfg.OpenAIModel = fc.OpenAIModel
	}
	if fc.Locale != "" {
		cfg.Locale = fc.Locale
	}
	if fc.SummaryDelaySecs > 0 {
		cfg.SummaryDelay = time.Duration(fc.SummaryDelaySecs * float64(time.Second))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STENOGRAM_DB"); v != "" {
		cfg.DatabasePath = expandTilde(v)
	}
	if v := os.Getenv("STENOGRAM_EXPORT_DIR"); v != "" {
		cfg.ExportDir = expandTilde(v)
	}
	if v := os.Getenv("STENOGRAM_ENGINE"); v != "" {
		cfg.Engine = v
	}
	if v := os.Getenv("STENOGRAM_RECOGNIZER"); v != "" {
		cfg.RecognizerCommand = strings.Fields(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("STENOGRAM_OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("STENOGRAM_LOCALE"); v != "" {
		cfg.Locale = v
	}
}

func validate(cfg *Config) error {
	switch cfg.Engine {
	case EngineScript, EnginePipe, EngineWhisper:
		return nil
	default:
		return fmt.Errorf("unknown engine %q (want %s, %s, or %s)",
			cfg.Engine, EngineScript, EnginePipe, EngineWhisper)
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "stenogram")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "stenogram")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
