package wallpaper

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFakeTool writes an executable shell script that records its
// arguments, one per line, into argsPath and exits with status.
func writeFakeTool(t *testing.T, status int) (tool, argsPath string) {
	t.Helper()

	dir := t.TempDir()
	argsPath = filepath.Join(dir, "args")
	tool = filepath.Join(dir, "xsetroot")
	body := "#!/bin/sh\nfor a in \"$@\"; do printf '%s\\n' \"$a\" >> " + argsPath + "; done\n" +
		"echo fake-stderr >&2\n" +
		"exit " + strconv.Itoa(status) + "\n"
	if err := os.WriteFile(tool, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return tool, argsPath
}

func newTestInvoker(tool string) (*Invoker, *bytes.Buffer) {
	inv := New(tool, discardLogger())
	var stderr bytes.Buffer
	inv.stdout = io.Discard
	inv.stderr = &stderr
	return inv, &stderr
}

func TestApply_RunsToolWithFlagPairs(t *testing.T) {
	tool, argsPath := writeFakeTool(t, 0)
	inv, stderr := newTestInvoker(tool)

	command, err := inv.Apply("/a.xbm", "#445566", "#112233")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	wantCmd := tool + " -bitmap /a.xbm -bg '#445566' -fg '#112233'"
	if command != wantCmd {
		t.Fatalf("Apply() command = %q, want %q", command, wantCmd)
	}

	data, err := os.ReadFile(argsPath)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	wantArgs := "-bitmap\n/a.xbm\n-bg\n#445566\n-fg\n#112233\n"
	if string(data) != wantArgs {
		t.Fatalf("tool args = %q, want %q", data, wantArgs)
	}

	if !strings.Contains(stderr.String(), "fake-stderr") {
		t.Fatalf("stderr = %q, want tool output passed through", stderr.String())
	}
}

func TestApply_NonZeroExit(t *testing.T) {
	tool, _ := writeFakeTool(t, 3)
	inv, _ := newTestInvoker(tool)

	command, err := inv.Apply("/a.xbm", "#445566", "#112233")
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("Apply() error = %v, want ErrToolFailed", err)
	}
	if !strings.Contains(err.Error(), "status 3") {
		t.Fatalf("Apply() error = %q, want exit status in message", err.Error())
	}
	if command == "" {
		t.Fatal("Apply() command is empty, want formatted command even on failure")
	}
}

func TestApply_MissingTool(t *testing.T) {
	inv, _ := newTestInvoker(filepath.Join(t.TempDir(), "no-such-tool"))

	_, err := inv.Apply("/a.xbm", "#445566", "#112233")
	if err == nil {
		t.Fatal("Apply() error = nil, want start failure")
	}
	if errors.Is(err, ErrToolFailed) {
		t.Fatalf("Apply() error = %v, want start failure, not exit failure", err)
	}
	if !strings.Contains(err.Error(), "failure while executing the process") {
		t.Fatalf("Apply() error = %q, want start failure message", err.Error())
	}
}

func TestNew_DefaultsToInheritedStreams(t *testing.T) {
	inv := New(DefaultTool, discardLogger())
	if inv.stdout != os.Stdout || inv.stderr != os.Stderr {
		t.Fatal("New() does not inherit the process streams")
	}
	if inv.Tool() != DefaultTool {
		t.Fatalf("Tool() = %q, want %q", inv.Tool(), DefaultTool)
	}
}
