package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cptspacemanspiff/xbmpwall/internal/palette"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Wallpaper.Tool != "/usr/bin/xsetroot" {
		t.Fatalf("unexpected Tool: %q", cfg.Wallpaper.Tool)
	}
	if cfg.Script.Shell != "/bin/sh" {
		t.Fatalf("unexpected Shell: %q", cfg.Script.Shell)
	}
	if cfg.Script.Path != "" {
		t.Fatalf("unexpected script Path: %q", cfg.Script.Path)
	}
	if cfg.UI.Width != 640 || cfg.UI.Height != 600 {
		t.Fatalf("unexpected window size: %dx%d", cfg.UI.Width, cfg.UI.Height)
	}
	if cfg.UI.ItemSize != 38 {
		t.Fatalf("unexpected ItemSize: %d", cfg.UI.ItemSize)
	}
	if !cfg.Notify.Enabled {
		t.Fatal("notifications disabled by default")
	}
	if _, err := NormalizeAndValidate(cfg); err != nil {
		t.Fatalf("NormalizeAndValidate(DefaultConfig()) error = %v", err)
	}
}

func TestLoad_OverridesAndKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[wallpaper]
tool = "/opt/x11/bin/xsetroot"

[ui]
item_size = 48

[palette]
colors = ["#aabbcc", "#000000"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Wallpaper.Tool != "/opt/x11/bin/xsetroot" {
		t.Fatalf("Tool = %q, want /opt/x11/bin/xsetroot", cfg.Wallpaper.Tool)
	}
	if cfg.Script.Shell != "/bin/sh" {
		t.Fatalf("Shell = %q, want default", cfg.Script.Shell)
	}
	if cfg.UI.ItemSize != 48 {
		t.Fatalf("ItemSize = %d, want 48", cfg.UI.ItemSize)
	}
	if cfg.UI.Width != 640 {
		t.Fatalf("Width = %d, want default 640", cfg.UI.Width)
	}
	colors := cfg.Colors()
	if len(colors) != 2 || colors[0] != "#AABBCC" {
		t.Fatalf("Colors() = %v, want normalized override", colors)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("Load() error = nil, want missing file error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("Load() error = %v, want not-exist error", err)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Wallpaper.Tool != "/usr/bin/xsetroot" {
		t.Fatalf("Tool = %q, want default", cfg.Wallpaper.Tool)
	}
	if len(cfg.Colors()) != len(palette.Default()) {
		t.Fatalf("Colors() has %d entries, want built-in palette", len(cfg.Colors()))
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTempConfig(t, "not = [valid")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil, want TOML parse error")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		contents   string
		wantErrSub string
	}{
		{
			name: "relative tool",
			contents: `
[wallpaper]
tool = "xsetroot"
`,
			wantErrSub: "wallpaper.tool must be an absolute path",
		},
		{
			name: "empty shell",
			contents: `
[script]
shell = "  "
`,
			wantErrSub: "script.shell must not be empty",
		},
		{
			name: "relative script path",
			contents: `
[script]
path = "xbmpwall.sh"
`,
			wantErrSub: "script.path must be an absolute path",
		},
		{
			name: "item size too small",
			contents: `
[ui]
item_size = 2
`,
			wantErrSub: "ui.item_size must be between 8 and 512",
		},
		{
			name: "window too wide",
			contents: `
[ui]
width = 100000
`,
			wantErrSub: "ui.width must be between",
		},
		{
			name: "bad palette entry",
			contents: `
[palette]
colors = ["#000000", "navy"]
`,
			wantErrSub: "palette.colors: palette entry 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.contents)

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() error = nil, want error containing %q", tt.wantErrSub)
			}
			if !strings.Contains(err.Error(), tt.wantErrSub) {
				t.Fatalf("Load() error = %q, want contains %q", err.Error(), tt.wantErrSub)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Script.Path = "/tmp/wall.sh"
	cfg.UI.ItemSize = 64
	cfg.Palette.Colors = []string{"#010203"}
	cfg.Notify.Enabled = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Script.Path != "/tmp/wall.sh" || got.UI.ItemSize != 64 || got.Notify.Enabled {
		t.Fatalf("Load() = %#v, want saved values", got)
	}
	if len(got.Palette.Colors) != 1 || got.Palette.Colors[0] != "#010203" {
		t.Fatalf("Palette = %v, want [#010203]", got.Palette.Colors)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ItemSize = 0

	if err := Save(filepath.Join(t.TempDir(), "config.toml"), cfg); err == nil {
		t.Fatal("Save() error = nil, want validation error")
	}
	if err := Save("  ", DefaultConfig()); err == nil {
		t.Fatal("Save() error = nil, want empty path error")
	}
}
