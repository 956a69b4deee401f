package selection

import (
	"fmt"
	"log/slog"

	"github.com/cptspacemanspiff/xbmpwall/internal/notify"
	"github.com/cptspacemanspiff/xbmpwall/internal/wallpaper"
)

// Session owns the process's single Selection and applies it through a
// wallpaper.Runner. All methods are called from the UI event thread.
type Session struct {
	sel      Selection
	runner   wallpaper.Runner
	notifier notify.Notifier
	log      *slog.Logger

	// command is the last successfully applied command line.
	command string
	busy    bool

	onRole  func(Role)
	onBusy  func(bool)
	onApply func(Selection)
}

// NewSession creates a session starting from sel.
func NewSession(sel Selection, runner wallpaper.Runner, notifier notify.Notifier, logger *slog.Logger) *Session {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Session{
		sel:      sel,
		runner:   runner,
		notifier: notifier,
		log:      logger,
	}
}

// OnRoleChange registers the presentation hook run after every toggle.
func (s *Session) OnRoleChange(fn func(Role)) { s.onRole = fn }

// OnBusyChange registers a hook run before and after the tool runs.
func (s *Session) OnBusyChange(fn func(bool)) { s.onBusy = fn }

// OnApply registers a hook run after every successful apply.
func (s *Session) OnApply(fn func(Selection)) { s.onApply = fn }

// Selection returns a copy of the current selection.
func (s *Session) Selection() Selection {
	return s.sel
}

// Command returns the last successfully applied command line.
func (s *Session) Command() (string, bool) {
	return s.command, s.command != ""
}

// Busy reports whether the wallpaper tool is running.
func (s *Session) Busy() bool {
	return s.busy
}

// ToggleRole flips the active role.
func (s *Session) ToggleRole() Role {
	s.sel.Active = s.sel.Active.Toggle()
	s.log.Debug("active role", "role", s.sel.Active)
	if s.onRole != nil {
		s.onRole(s.sel.Active)
	}
	return s.sel.Active
}

// PickColor stores hex in the active role and reapplies the current bitmap,
// if there is one.
func (s *Session) PickColor(hex string) {
	if s.busy {
		return
	}
	s.sel.SetColor(hex)
	s.log.Debug("color picked", "role", s.sel.Active, "color", hex)
	if s.sel.Bitmap != "" {
		s.apply()
	}
}

// PickBitmap selects path and applies it with the current colors.
func (s *Session) PickBitmap(path string) {
	if s.busy {
		return
	}
	s.sel.Bitmap = path
	s.log.Debug("bitmap picked", "path", path)
	s.apply()
}

func (s *Session) apply() {
	s.setBusy(true)
	defer s.setBusy(false)

	command, err := s.runner.Apply(s.sel.Bitmap, s.sel.Background, s.sel.Foreground)
	if err != nil {
		s.log.Error("set root window failed", "bitmap", s.sel.Bitmap, "err", err)
		if nerr := s.notifier.Notify("Could not set the wallpaper", fmt.Sprintf("%s: %v", s.sel.Bitmap, err)); nerr != nil {
			s.log.Debug("notification failed", "err", nerr)
		}
		return
	}

	s.command = command
	if s.onApply != nil {
		s.onApply(s.sel)
	}
}

func (s *Session) setBusy(busy bool) {
	s.busy = busy
	if s.onBusy != nil {
		s.onBusy(busy)
	}
}
