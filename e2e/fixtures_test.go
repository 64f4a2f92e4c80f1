//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Workspace is an isolated HOME with its own config, state, cache and a fake
// desktop opener that records what it was asked to open
type Workspace struct {
	Root       string
	Home       string
	Extended   string
	ConfigPath string
	OpenedLog  string
	binDir     string
}

// NewWorkspace builds the fixture tree used by the launcher tests
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()

	ws := &Workspace{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		Extended:   filepath.Join(root, "srv"),
		ConfigPath: filepath.Join(root, "config", "quicksearch", "config.toml"),
		OpenedLog:  filepath.Join(root, "opened.log"),
		binDir:     filepath.Join(root, "bin"),
	}

	files := map[string]string{
		"home/notes.md":           "# notes",
		"home/notes/todo.txt":     "milk",
		"home/.hidden/notes.txt":  "secret",
		"srv/archive/notes.tar":   "",
		"home/projects/readme.md": "hello",
	}
	for i := 1; i <= 8; i++ {
		files[fmt.Sprintf("home/docs/report-%d.txt", i)] = "report"
	}
	for rel, content := range files {
		ws.WriteFile(t, rel, content)
	}

	// Fake openers for linux and darwin
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\n", ws.OpenedLog)
	for _, name := range []string{"xdg-open", "open"} {
		ws.writeExecutable(t, filepath.Join(ws.binDir, name), script)
	}

	config := fmt.Sprintf(`version = 1

[ui]
max_results = 3
link_slot = true
show_hints = true

[search]
default_dirs = [%q]
extended_dirs = [%q]
match_mode = "substring"
max_workers_percent = 0.5
default_refresh_seconds = 0
extended_refresh_seconds = 0
max_results = 200
watch = false

[search.exclude_from_default]
regex = ['^%s/\.[^/]+/?$']

[index]
cache_path = %q
`, ws.Home, ws.Extended, ws.Home, filepath.Join(root, "cache", "index.db"))
	ws.WriteFile(t, "config/quicksearch/config.toml", config)

	return ws
}

// WriteFile creates a file below the workspace root
func (ws *Workspace) WriteFile(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(ws.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func (ws *Workspace) writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Env returns the process environment isolated to the workspace
func (ws *Workspace) Env() []string {
	return append(os.Environ(),
		"HOME="+ws.Home,
		"XDG_CONFIG_HOME="+filepath.Join(ws.Root, "config"),
		"XDG_STATE_HOME="+filepath.Join(ws.Root, "state"),
		"XDG_CACHE_HOME="+filepath.Join(ws.Root, "cache"),
		"PATH="+ws.binDir+string(os.PathListSeparator)+os.Getenv("PATH"),
	)
}

// Opened waits until the fake opener has been called with something containing want
func (ws *Workspace) Opened(want string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		data, _ := os.ReadFile(ws.OpenedLog)
		if strings.Contains(string(data), want) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}
