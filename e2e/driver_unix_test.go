//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// maxCapture bounds the captured output; older bytes are dropped first
const maxCapture = 1 << 20

var binPath = "quicksearch_e2e"

// Keys written to the terminal
const (
	KeyEnter  = "\r"
	KeyCtrlC  = "\x03"
	KeyEsc    = "\x1b"
	KeyDown   = "\x1b[B"
	KeyPgUp   = "\x1b[5~"
	KeyPgDown = "\x1b[6~"
	KeyQuit   = "q"
)

// escapes matches CSI, OSC, charset and keypad sequences plus carriage returns
var escapes = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

func plain(s string) string {
	return escapes.ReplaceAllString(s, "")
}

// Terminal runs the launcher on a pseudo terminal and records what it draws
type Terminal struct {
	t   *testing.T
	pty *os.File
	cmd *exec.Cmd

	mu  sync.Mutex
	out bytes.Buffer
}

// NewTerminal creates an idle terminal; call StartApp to launch
func NewTerminal(t *testing.T) *Terminal {
	return &Terminal{t: t}
}

// StartApp launches quicksearch inside ws with the given arguments
func (term *Terminal) StartApp(ws *Workspace, args ...string) error {
	term.cmd = exec.Command(binPath, append([]string{"--config", ws.ConfigPath}, args...)...)
	term.cmd.Env = append(ws.Env(), "TERM=xterm-256color", "LC_ALL=C.UTF-8", "LANG=C.UTF-8")

	f, err := pty.StartWithSize(term.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("start on pty: %w", err)
	}
	term.pty = f

	go term.capture()
	return nil
}

func (term *Terminal) capture() {
	buf := make([]byte, 8192)
	for {
		n, err := term.pty.Read(buf)
		if n > 0 {
			term.mu.Lock()
			term.out.Write(buf[:n])
			if extra := term.out.Len() - maxCapture; extra > 0 {
				term.out.Next(extra)
			}
			term.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw key sequences
func (term *Terminal) SendKeys(keys string) error {
	_, err := term.pty.Write([]byte(keys))
	return err
}

// Type writes text one rune at a time so every keystroke is its own event
func (term *Terminal) Type(text string) error {
	for _, r := range text {
		if err := term.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (term *Terminal) SendEnter() error { return term.SendKeys(KeyEnter) }

func (term *Terminal) SendCtrlC() error { return term.SendKeys(KeyCtrlC) }

// Ready waits for the first frame
func (term *Terminal) Ready() bool {
	return term.OutputContainsPlain("quicksearch", 5*time.Second)
}

// ClearOutput drops everything captured so far, so later waits only see new frames
func (term *Terminal) ClearOutput() {
	term.mu.Lock()
	defer term.mu.Unlock()
	term.out.Reset()
}

// SnapshotPlain returns the captured output without escape sequences
func (term *Terminal) SnapshotPlain() string {
	term.mu.Lock()
	defer term.mu.Unlock()
	return plain(term.out.String())
}

// WaitFor polls the plain output until pred holds or timeout passes
func (term *Terminal) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !pred(term.SnapshotPlain()) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
	return true
}

// OutputContainsPlain waits for text to appear in the plain output
func (term *Terminal) OutputContainsPlain(text string, timeout time.Duration) bool {
	return term.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// WaitExit waits for the process to end
func (term *Terminal) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- term.cmd.Wait() }()
	select {
	case err := <-done:
		term.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("process still running after %s", timeout)
	}
}

// DumpTailOnFail logs the last n bytes of plain output when the test failed
func (term *Terminal) DumpTailOnFail(n int) {
	if !term.t.Failed() {
		return
	}
	s := term.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	term.t.Logf("last output:\n%s", s)
}

// Cleanup closes the pty, which hangs up the app, then kills it if needed
func (term *Terminal) Cleanup() {
	if term.pty != nil {
		_ = term.pty.Close()
		term.pty = nil
	}
	if term.cmd != nil && term.cmd.Process != nil {
		_ = term.cmd.Process.Kill()
		_, _ = term.cmd.Process.Wait()
		term.cmd = nil
	}
}
