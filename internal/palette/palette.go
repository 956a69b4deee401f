// Package palette holds the swatch colors offered for the foreground and
// background roles.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// colors is the built-in swatch palette, ordered as it is laid out in the UI.
var colors = []string{
	// greys
	"#000000", "#1C1C1C", "#333333", "#4D4D4D", "#666666", "#808080",
	"#999999", "#B3B3B3", "#CCCCCC", "#E6E6E6", "#F5F5F5", "#FFFFFF",
	// reds
	"#2B0000", "#550000", "#800000", "#AA0000", "#D40000", "#FF0000",
	"#FF2A2A", "#FF5555", "#FF8080", "#FFAAAA", "#FFD5D5", "#B22222",
	// oranges and browns
	"#2B1100", "#552200", "#803300", "#AA4400", "#D45500", "#FF6600",
	"#FF7F2A", "#FF9955", "#FFB380", "#FFCCAA", "#8B4513", "#D2691E",
	// yellows
	"#2B2B00", "#555500", "#808000", "#AAAA00", "#D4D400", "#FFFF00",
	"#FFFF2A", "#FFFF55", "#FFFF80", "#FFFFAA", "#FFD700", "#EEE8AA",
	// greens
	"#002B00", "#005500", "#008000", "#00AA00", "#00D400", "#00FF00",
	"#2AFF2A", "#55FF55", "#80FF80", "#AAFFAA", "#228B22", "#556B2F",
	// cyans
	"#002B2B", "#005555", "#008080", "#00AAAA", "#00D4D4", "#00FFFF",
	"#2AFFFF", "#55FFFF", "#80FFFF", "#AAFFFF", "#5F9EA0", "#20B2AA",
	// blues
	"#00002B", "#000055", "#000080", "#0000AA", "#0000D4", "#0000FF",
	"#2A2AFF", "#5555FF", "#8080FF", "#AAAAFF", "#4682B4", "#1E90FF",
	// purples and pinks
	"#2B002B", "#550055", "#800080", "#AA00AA", "#D400D4", "#FF00FF",
	"#FF2AFF", "#FF55FF", "#FF80FF", "#FFAAFF", "#9370DB", "#C71585",
	// desktop classics
	"#ECE9D8", "#3A6EA5", "#6B8E23", "#5A4E44", "#2F4F4F", "#708090",
}

// Default returns the built-in palette. The returned slice is a copy.
func Default() []string {
	out := make([]string, len(colors))
	copy(out, colors)
	return out
}

// Valid reports whether hex is a 7 character #rrggbb color.
func Valid(hex string) bool {
	if len(hex) != 7 || hex[0] != '#' {
		return false
	}
	for i := 1; i < len(hex); i++ {
		c := hex[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Parse converts a #rrggbb color into an opaque NRGBA value.
func Parse(hex string) (color.NRGBA, error) {
	if !Valid(hex) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Normalize validates a configured palette and uppercases its entries.
func Normalize(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("palette must not be empty")
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for i, c := range in {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !Valid(c) {
			return nil, fmt.Errorf("palette entry %d: invalid color %q, want #rrggbb", i, in[i])
		}
		if seen[c] {
			return nil, fmt.Errorf("palette entry %d: duplicate color %s", i, c)
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
