package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"github.com/cptspacemanspiff/xbmpwall/internal/palette"
	"github.com/cptspacemanspiff/xbmpwall/internal/wallpaper"
)

const (
	minWindowSize = 160
	maxWindowSize = 8192
	minItemSize   = 8
	maxItemSize   = 512
)

type Config struct {
	Wallpaper WallpaperConfig `toml:"wallpaper"`
	Script    ScriptConfig    `toml:"script"`
	UI        UIConfig        `toml:"ui"`
	Palette   PaletteConfig   `toml:"palette"`
	Notify    NotifyConfig    `toml:"notify"`
}

type WallpaperConfig struct {
	Tool string `toml:"tool"`
}

// ScriptConfig locates the persisted script. An empty Path means
// ${HOME}/.xbmpwall.sh, resolved at startup.
type ScriptConfig struct {
	Path  string `toml:"path"`
	Shell string `toml:"shell"`
}

type UIConfig struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	ItemSize int `toml:"item_size"`
}

// PaletteConfig replaces the built-in swatches when Colors is non-empty.
type PaletteConfig struct {
	Colors []string `toml:"colors"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Wallpaper: WallpaperConfig{
			Tool: wallpaper.DefaultTool,
		},
		Script: ScriptConfig{
			Shell: "/bin/sh",
		},
		UI: UIConfig{
			Width:    640,
			Height:   600,
			ItemSize: 38,
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns config.toml inside the user's configuration directory.
func DefaultPath() string {
	return filepath.Join(configdir.LocalConfig("xbmpwall"), "config.toml")
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return NormalizeAndValidate(cfg)
}

// LoadOrDefault loads path, falling back to defaults when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return NormalizeAndValidate(DefaultConfig())
	}
	return cfg, err
}

// Colors returns the swatch palette to show.
func (c *Config) Colors() []string {
	if len(c.Palette.Colors) > 0 {
		out := make([]string, len(c.Palette.Colors))
		copy(out, c.Palette.Colors)
		return out
	}
	return palette.Default()
}

func NormalizeAndValidate(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	sanitized := *cfg

	var err error
	sanitized.Wallpaper.Tool, err = sanitizePath("wallpaper.tool", sanitized.Wallpaper.Tool)
	if err != nil {
		return nil, err
	}
	sanitized.Script.Shell, err = sanitizePath("script.shell", sanitized.Script.Shell)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sanitized.Script.Path) != "" {
		sanitized.Script.Path, err = sanitizePath("script.path", sanitized.Script.Path)
		if err != nil {
			return nil, err
		}
	} else {
		sanitized.Script.Path = ""
	}

	if err := validateRange("ui.width", sanitized.UI.Width, minWindowSize, maxWindowSize); err != nil {
		return nil, err
	}
	if err := validateRange("ui.height", sanitized.UI.Height, minWindowSize, maxWindowSize); err != nil {
		return nil, err
	}
	if err := validateRange("ui.item_size", sanitized.UI.ItemSize, minItemSize, maxItemSize); err != nil {
		return nil, err
	}

	if len(sanitized.Palette.Colors) > 0 {
		colors, err := palette.Normalize(sanitized.Palette.Colors)
		if err != nil {
			return nil, fmt.Errorf("palette.colors: %w", err)
		}
		sanitized.Palette.Colors = colors
	}

	return &sanitized, nil
}

func Save(path string, cfg *Config) error {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return fmt.Errorf("config path must not be empty")
	}

	sanitized, err := NormalizeAndValidate(cfg)
	if err != nil {
		return err
	}

	var data bytes.Buffer
	if err := toml.NewEncoder(&data).Encode(sanitized); err != nil {
		return fmt.Errorf("encode config TOML: %w", err)
	}

	dir := filepath.Dir(trimmedPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data.Bytes()); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, trimmedPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	tmpPath = ""

	return nil
}

func sanitizePath(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s must not be empty", name)
	}
	cleaned := filepath.Clean(trimmed)
	if !filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%s must be an absolute path, got %q", name, value)
	}
	return cleaned, nil
}

func validateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}

	return nil
}
