// Package script reads and writes the persisted wallpaper script.
//
// The script is a two line shell script: a shebang followed by the exact
// command that last set the root window bitmap. It doubles as the only state
// file, so the second line is parsed back on the next start.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cptspacemanspiff/xbmpwall/internal/palette"
)

// FileName is the script name inside the home directory.
const FileName = ".xbmpwall.sh"

var (
	ErrHomeNotSet = errors.New("the HOME environment variable is not set")
	ErrUnreadable = errors.New("script exists but is unreadable")
	ErrMalformed  = errors.New("script command is malformed")
)

// Record is the state encoded in the script's command line.
type Record struct {
	Bitmap     string
	Background string
	Foreground string
}

// Command formats the command line that applies r with tool. The bitmap path
// is not quoted; a path containing whitespace does not parse back.
func (r Record) Command(tool string) string {
	return fmt.Sprintf("%s -bitmap %s -bg '%s' -fg '%s'", tool, r.Bitmap, r.Background, r.Foreground)
}

// ParseCommand extracts a Record from a command line written by Command.
func ParseCommand(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return Record{}, fmt.Errorf("%w: want 7 fields, got %d", ErrMalformed, len(fields))
	}
	for i, flag := range []string{1: "-bitmap", 3: "-bg", 5: "-fg"} {
		if flag != "" && fields[i] != flag {
			return Record{}, fmt.Errorf("%w: field %d is %q, want %s", ErrMalformed, i, fields[i], flag)
		}
	}

	bg, err := parseColor(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("%w: -bg: %v", ErrMalformed, err)
	}
	fg, err := parseColor(fields[6])
	if err != nil {
		return Record{}, fmt.Errorf("%w: -fg: %v", ErrMalformed, err)
	}

	return Record{Bitmap: fields[2], Background: bg, Foreground: fg}, nil
}

// parseColor strips the shell quoting from a color token and keeps the
// leading '#' plus six hex digits.
func parseColor(token string) (string, error) {
	s := token
	if len(s) > 0 && (s[0] == '\'' || s[0] == '"') {
		s = s[1:]
	}
	if n := len(s); n > 0 && (s[n-1] == '\'' || s[n-1] == '"') {
		s = s[:n-1]
	}
	if len(s) > 7 {
		s = s[:7]
	}
	if !palette.Valid(s) {
		return "", fmt.Errorf("invalid color %q", token)
	}
	return s, nil
}

// DefaultPath returns ${HOME}/.xbmpwall.sh.
func DefaultPath() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", ErrHomeNotSet
	}
	return filepath.Join(home, FileName), nil
}

// Store owns the script file at a fixed path.
type Store struct {
	path  string
	shell string
}

// NewStore creates a Store writing scripts interpreted by shell.
func NewStore(path, shell string) *Store {
	return &Store{path: path, shell: shell}
}

// Path returns the script location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the last saved record. A missing script is not an error and
// returns a nil record.
func (s *Store) Load() (*Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, s.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := 0
	var line string
	for lines < 2 && scanner.Scan() {
		line = scanner.Text()
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, s.path, err)
	}
	if lines < 2 {
		return nil, fmt.Errorf("%w: %s: missing command line", ErrUnreadable, s.path)
	}

	rec, err := ParseCommand(line)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return &rec, nil
}

// Save replaces the script with the shebang and command. An empty command
// leaves any existing script untouched and reports false.
func (s *Store) Save(command string) (bool, error) {
	if command == "" {
		return false, nil
	}

	// A linked script is rewritten at its target so the link survives.
	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}

	dir := filepath.Dir(target)
	tmpFile, err := os.CreateTemp(dir, ".xbmpwall-*.sh")
	if err != nil {
		return false, fmt.Errorf("create temp script: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmpFile)
	fmt.Fprintf(w, "#!%s\n%s\n", s.shell, command)
	if err := w.Flush(); err != nil {
		_ = tmpFile.Close()
		return false, fmt.Errorf("write script %s: %w", s.path, err)
	}
	if err := tmpFile.Chmod(0o700); err != nil {
		_ = tmpFile.Close()
		return false, fmt.Errorf("chmod script %s: %w", s.path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return false, fmt.Errorf("close script %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return false, fmt.Errorf("replace script %s: %w", s.path, err)
	}
	tmpPath = ""

	return true, nil
}
