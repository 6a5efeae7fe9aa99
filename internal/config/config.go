// Package config handles configuration loading and defaults for chattybuddy.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/chattybuddy/config.yaml)
// and then overridden from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chattybuddy/internal/fsutil"

	"gopkg.in/yaml.v3"
)

const appName = "chattybuddy"

// Shell names accepted by the shell key.
const (
	ShellTUI     = "tui"
	ShellConsole = "console"
)

// Environment variables that override the file.
const (
	EnvDataDir = "CHATTYBUDDY_DATA_DIR"
	EnvShell   = "CHATTYBUDDY_SHELL"
	EnvDebug   = "DEBUG"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.chattybuddy)
	DataDir string `yaml:"data_dir,omitempty"`

	// DataFile is the task file name inside DataDir
	DataFile string `yaml:"data_file,omitempty"`

	// Shell selects the front end: "tui" or "console"
	Shell string `yaml:"shell,omitempty"`

	// Theme customizes the chat colors
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Log configures the session log
	Log LogConfig `yaml:"log,omitempty"`

	// Debug is set from the DEBUG environment variable only.
	Debug bool `yaml:"-"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	Primary    string `yaml:"primary,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Muted      string `yaml:"muted,omitempty"`
	UserBubble string `yaml:"user_bubble,omitempty"`
	BotBubble  string `yaml:"bot_bubble,omitempty"`
	Error      string `yaml:"error,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "enter", "ctrl+c,esc", "pgup,ctrl+u"
type KeysConfig struct {
	Send       string `yaml:"send,omitempty"`        // default: "enter"
	Quit       string `yaml:"quit,omitempty"`        // default: "ctrl+c,esc"
	ScrollUp   string `yaml:"scroll_up,omitempty"`   // default: "pgup,up"
	ScrollDown string `yaml:"scroll_down,omitempty"` // default: "pgdown,down"
	Help       string `yaml:"help,omitempty"`        // default: "f1"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// FarewellDelayMS is how long the farewell stays on screen before exit
	FarewellDelayMS int `yaml:"farewell_delay_ms"` // default: 1500

	// ShowWelcome shows the logo and greeting at startup
	ShowWelcome bool `yaml:"show_welcome"` // default: true
}

// LogConfig defines the session log.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`  // default: <data_dir>/chattybuddy.log
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		DataFile: "chattybuddy.txt",
		Shell:    ShellTUI,
		Theme: ThemeConfig{
			Primary:    "#7C3AED", // Violet
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			UserBubble: "#2563EB", // Blue
			BotBubble:  "#374151", // Slate
			Error:      "#EF4444", // Red
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			FarewellDelayMS: 1500,
			ShowWelcome:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the path to the config file, or "" when no home is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults, then applies
// environment overrides. If no config file exists, defaults are used.
func Load() (*Config, error) {
	cfg := Default()

	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.mergeBytes(data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) mergeBytes(data []byte) error {
	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	c.mergeFromYAML(&userCfg, &doc)
	return nil
}

// ApplyEnv overrides settings from environment lookups.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(getenv(EnvShell)); v != "" {
		c.Shell = strings.ToLower(v)
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv(EnvDebug))); err == nil && v {
		c.Debug = true
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Shell {
	case ShellTUI, ShellConsole:
	default:
		return fmt.Errorf("shell must be %q or %q, got %q", ShellTUI, ShellConsole, c.Shell)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.UX.FarewellDelayMS < 0 {
		return fmt.Errorf("ux.farewell_delay_ms must not be negative, got %d", c.UX.FarewellDelayMS)
	}
	if strings.ContainsAny(c.DataFile, `/\`) {
		return fmt.Errorf("data_file must be a file name, got %q", c.DataFile)
	}
	return nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	setIf(&c.DataDir, other.DataDir)
	setIf(&c.DataFile, other.DataFile)
	setIf(&c.Shell, other.Shell)

	setIf(&c.Theme.Primary, other.Theme.Primary)
	setIf(&c.Theme.Accent, other.Theme.Accent)
	setIf(&c.Theme.Muted, other.Theme.Muted)
	setIf(&c.Theme.UserBubble, other.Theme.UserBubble)
	setIf(&c.Theme.BotBubble, other.Theme.BotBubble)
	setIf(&c.Theme.Error, other.Theme.Error)

	setIf(&c.Keys.Send, other.Keys.Send)
	setIf(&c.Keys.Quit, other.Keys.Quit)
	setIf(&c.Keys.ScrollUp, other.Keys.ScrollUp)
	setIf(&c.Keys.ScrollDown, other.Keys.ScrollDown)
	setIf(&c.Keys.Help, other.Keys.Help)

	setIf(&c.Log.Level, other.Log.Level)
	setIf(&c.Log.File, other.Log.File)

	if other.UX.FarewellDelayMS > 0 {
		c.UX.FarewellDelayMS = other.UX.FarewellDelayMS
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "ux", "show_welcome") {
		c.UX.ShowWelcome = other.UX.ShowWelcome
	}
	// An explicit 0 means quit immediately.
	if yamlHasPath(doc, "ux", "farewell_delay_ms") {
		c.UX.FarewellDelayMS = other.UX.FarewellDelayMS
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

// GetLogFile returns the resolved log file path.
func (c *Config) GetLogFile() string {
	if c.Log.File == "" {
		return filepath.Join(c.GetDataDir(), appName+".log")
	}
	return expandHome(c.Log.File)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
