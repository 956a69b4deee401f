// Package selection holds the user's current wallpaper choice and the
// handlers that react to bitmap clicks, swatch clicks and role toggles.
package selection

import (
	"github.com/cptspacemanspiff/xbmpwall/internal/script"
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
)

// Role is the color a swatch click writes to.
type Role int

const (
	Foreground Role = iota
	Background
)

// Toggle returns the other role.
func (r Role) Toggle() Role {
	if r == Foreground {
		return Background
	}
	return Foreground
}

func (r Role) String() string {
	switch r {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return "unknown"
	}
}

// Selection is the bitmap and color pair that will be applied next.
// An empty Bitmap means no bitmap has been chosen yet.
type Selection struct {
	Bitmap     string
	Foreground string
	Background string
	Active     Role
}

// New returns the start-of-process selection.
func New() Selection {
	return Selection{
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		Active:     Foreground,
	}
}

// Restore overwrites the bitmap and colors with a persisted record.
// A nil record leaves s unchanged.
func (s *Selection) Restore(rec *script.Record) {
	if rec == nil {
		return
	}
	s.Bitmap = rec.Bitmap
	s.Foreground = rec.Foreground
	s.Background = rec.Background
}

// SetColor writes hex into the active role only.
func (s *Selection) SetColor(hex string) {
	if s.Active == Foreground {
		s.Foreground = hex
	} else {
		s.Background = hex
	}
}
