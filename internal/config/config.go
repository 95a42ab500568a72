// ABOUTME: Layered configuration for the Sendspin player
// ABOUTME: Defaults, then an optional YAML file, then env vars, then CLI flags, in ascending precedence
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	// WebSocketPath is the HTTP path the server mounts the Sendspin
	// WebSocket endpoint on, used both to build the default server URL and
	// to advertise/resolve that URL from mDNS discovery.
	WebSocketPath = "/sendspin"

	DefaultServerURL     = "ws://localhost:8927" + WebSocketPath
	DefaultMinLeadMs     = 200
	DefaultStartBufferMs = 500
	DefaultLogLevel      = "info"
)

// Config holds every tunable the orchestrator and its collaborators read.
// Field names match the normative tunables from spec.md §4.8 and §6.
type Config struct {
	ServerURL     string `yaml:"server_url"`
	Name          string `yaml:"name"`
	MinLeadMs     int    `yaml:"min_lead_ms"`
	StartBufferMs int    `yaml:"start_buffer_ms"`
	LogLevel      string `yaml:"log_level"`
	LogLead       bool   `yaml:"log_lead"`
	TUI           bool   `yaml:"tui"`
}

// Defaults returns the built-in baseline, the lowest-precedence layer.
func Defaults() Config {
	return Config{
		ServerURL:     DefaultServerURL,
		MinLeadMs:     DefaultMinLeadMs,
		StartBufferMs: DefaultStartBufferMs,
		LogLevel:      DefaultLogLevel,
	}
}

// applyYAMLFile overlays path's contents onto cfg, if path is non-empty and
// the file exists. A missing path is not an error; the file is optional.
func applyYAMLFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays the normative SS_* environment variables onto cfg.
// Names match spec.md §6 exactly, with SS_LOG_LEVEL added alongside
// SS_LOG_LEAD per SPEC_FULL's expanded logging story.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("SS_PLAY_MIN_LEAD_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SS_PLAY_MIN_LEAD_MS: %w", err)
		}
		cfg.MinLeadMs = n
	}
	if v := getenv("SS_PLAY_START_BUFFER_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SS_PLAY_START_BUFFER_MS: %w", err)
		}
		cfg.StartBufferMs = n
	}
	if v := getenv("SS_LOG_LEAD"); v != "" {
		cfg.LogLead = v == "1" || v == "true"
	}
	if v := getenv("SS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Flags binds the CLI surface from SPEC_FULL §6 onto a pflag.FlagSet and
// returns pointers the caller resolves into cfg after Parse.
type Flags struct {
	ConfigPath    *string
	ServerURL     *string
	Name          *string
	MinLeadMs     *int
	StartBufferMs *int
	LogLevel      *string
	TUI           *bool
}

// RegisterFlags defines the CLI surface on fs, seeded with cfg's current
// (defaults + file + env layered) values so an unset flag doesn't clobber
// an earlier layer.
func RegisterFlags(fs *pflag.FlagSet, cfg Config) *Flags {
	return &Flags{
		ConfigPath:    fs.String("config", "", "path to an optional YAML config file"),
		ServerURL:     fs.String("server", cfg.ServerURL, "Sendspin server WebSocket URL"),
		Name:          fs.String("name", cfg.Name, "display name advertised in client/hello"),
		MinLeadMs:     fs.Int("min-lead-ms", cfg.MinLeadMs, "minimum lead time before a deadline, in milliseconds"),
		StartBufferMs: fs.Int("start-buffer-ms", cfg.StartBufferMs, "prebuffer threshold before playback is considered started, in milliseconds"),
		LogLevel:      fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error"),
		TUI:           fs.Bool("tui", cfg.TUI, "enable the interactive status UI"),
	}
}

// ApplyFlags overlays flags that were explicitly set by the user onto cfg.
// Flags left at their seeded default are not reapplied, so precedence among
// file/env/flags holds even though RegisterFlags seeds flag defaults from
// cfg itself.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet, flags *Flags) {
	if fs.Changed("server") {
		cfg.ServerURL = *flags.ServerURL
	}
	if fs.Changed("name") {
		cfg.Name = *flags.Name
	}
	if fs.Changed("min-lead-ms") {
		cfg.MinLeadMs = *flags.MinLeadMs
	}
	if fs.Changed("start-buffer-ms") {
		cfg.StartBufferMs = *flags.StartBufferMs
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *flags.LogLevel
	}
	if fs.Changed("tui") {
		cfg.TUI = *flags.TUI
	}
}

// Load builds the fully layered Config: defaults, then configPath's YAML
// contents (if any), then environment variables. CLI flags are applied
// separately via RegisterFlags/ApplyFlags once the flag set has parsed,
// since pflag needs a Config to seed its own defaults from this layer.
func Load(configPath string, getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if err := applyYAMLFile(&cfg, configPath); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
