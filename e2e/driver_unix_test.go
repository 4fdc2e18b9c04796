//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// binPath is replaced by TestMain with the freshly built binary.
var binPath = "quicklaunch_e2e"

const scrollback = 1 << 20

const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyEsc   = "\x1b"
	KeyUp    = "\x1b[A"
	KeyDown  = "\x1b[B"
)

// ansiRe matches CSI, OSC, charset and keypad sequences plus carriage returns.
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// screenLog keeps the most recent scrollback bytes written by the launcher.
type screenLog struct {
	mu      sync.Mutex
	data    []byte
	next    int
	wrapped bool
}

func (l *screenLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range p {
		l.data[l.next] = b
		l.next++
		if l.next == len(l.data) {
			l.next = 0
			l.wrapped = true
		}
	}
	return len(p), nil
}

func (l *screenLog) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.wrapped {
		return string(l.data[:l.next])
	}
	return string(l.data[l.next:]) + string(l.data[:l.next])
}

// TUITestFramework drives one quicklaunch process attached to a pseudo terminal.
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	screen    *screenLog
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{
		t:      t,
		screen: &screenLog{data: make([]byte, scrollback)},
	}
}

// StartApp launches the binary on a 120x40 terminal inside the workspace.
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(tf.env(), "TERM=xterm-256color", "LC_ALL=C", "LANG=C")

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("start %s on pty: %w", binPath, err)
	}
	tf.pty = f

	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				_, _ = tf.screen.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendEnter() error { return tf.SendKeys(KeyEnter) }

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }

func (tf *TUITestFramework) Escape() error { return tf.SendKeys(KeyEsc) }

func (tf *TUITestFramework) Down() error { return tf.SendKeys(KeyDown) }

func (tf *TUITestFramework) Up() error { return tf.SendKeys(KeyUp) }

// Type sends text one rune at a time so every keystroke gets its own frame.
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

// WaitExit reports whether the process exited within timeout, and its exit error.
func (tf *TUITestFramework) WaitExit(timeout time.Duration) (bool, error) {
	tf.t.Helper()
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		return true, err
	case <-time.After(timeout):
		return false, nil
	}
}

// RunCLI runs the binary without a terminal and returns its combined output.
func (tf *TUITestFramework) RunCLI(args ...string) (string, error) {
	tf.t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Env = tf.env()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// env points $HOME and every XDG directory into the workspace.
func (tf *TUITestFramework) env() []string {
	return append(os.Environ(),
		"HOME="+tf.workspace,
		"XDG_DATA_HOME="+filepath.Join(tf.workspace, "data"),
		"XDG_DATA_DIRS="+filepath.Join(tf.workspace, "system"),
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, "config"),
		"XDG_STATE_HOME="+filepath.Join(tf.workspace, "state"),
	)
}

// Ready waits until the search placeholder has been drawn.
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContainsPlain("earch applications...", 5*time.Second)
}

func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

func (tf *TUITestFramework) Quit() error { return tf.Escape() }

func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor polls the raw screen output until pred holds or timeout passes.
// On timeout the plain tail of the screen is logged.
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	tick := time.NewTicker(25 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		select {
		case <-deadline:
			tail := tf.SnapshotPlain()
			if len(tail) > 2048 {
				tail = tail[len(tail)-2048:]
			}
			tf.t.Logf("screen after %s:\n%s", timeout, tail)
			return false
		case <-tick.C:
		}
	}
}

func (tf *TUITestFramework) Snapshot() string { return tf.screen.String() }

func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// Cleanup hangs up the terminal and reaps the process.
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
