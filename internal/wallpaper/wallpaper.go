// Package wallpaper runs the external tool that paints the X11 root window.
package wallpaper

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/cptspacemanspiff/xbmpwall/internal/script"
)

// DefaultTool is the root window tool used when none is configured.
const DefaultTool = "/usr/bin/xsetroot"

// ErrToolFailed reports that the tool ran but exited with a non-zero status.
var ErrToolFailed = errors.New("wallpaper tool failed")

// Runner applies a bitmap and color pair to the root window.
type Runner interface {
	Apply(bitmap, background, foreground string) (string, error)
}

// Invoker runs the tool synchronously, sharing the caller's output streams.
type Invoker struct {
	tool   string
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

// New creates an Invoker for tool.
func New(tool string, logger *slog.Logger) *Invoker {
	return &Invoker{
		tool:   tool,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    logger,
	}
}

// Tool returns the configured tool path.
func (i *Invoker) Tool() string {
	return i.tool
}

// Apply runs the tool and blocks until it exits. It returns the command line
// that reproduces the call; the error is nil only when the tool exited 0.
func (i *Invoker) Apply(bitmap, background, foreground string) (string, error) {
	command := script.Record{
		Bitmap:     bitmap,
		Background: background,
		Foreground: foreground,
	}.Command(i.tool)

	cmd := exec.Command(i.tool, "-bitmap", bitmap, "-bg", background, "-fg", foreground)
	cmd.Stdout = i.stdout
	cmd.Stderr = i.stderr

	i.log.Debug("run", "cmd", command)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return command, fmt.Errorf("%w: %s exited with status %d", ErrToolFailed, i.tool, exitErr.ExitCode())
		}
		return command, fmt.Errorf("failure while executing the process %s: %w", i.tool, err)
	}
	i.log.Debug("done", "bitmap", bitmap, "bg", background, "fg", foreground)

	return command, nil
}
