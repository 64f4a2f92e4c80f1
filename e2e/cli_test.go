//go:build e2e && unix

package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, ws *Workspace, args ...string) string {
	t.Helper()
	cmd := exec.Command(binPath, append([]string{"--config", ws.ConfigPath}, args...)...)
	cmd.Env = ws.Env()
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return string(out)
}

func TestClassifyCommand(t *testing.T) {
	ws := NewWorkspace(t)

	out := runCLI(t, ws, "classify", "example.com")
	assert.Contains(t, out, "kind: website")
	assert.Contains(t, out, "https://example.com")

	out = runCLI(t, ws, "classify", "!gh", "cats")
	assert.Contains(t, out, "kind: bang")
	assert.Contains(t, out, "GitHub")
}

func TestSearchCommand(t *testing.T) {
	ws := NewWorkspace(t)

	out := runCLI(t, ws, "search", "--rebuild", "notes")
	assert.Contains(t, out, filepath.Join(ws.Home, "notes.md"))
	assert.Contains(t, out, filepath.Join(ws.Home, "notes")+"/")
	assert.NotContains(t, out, "notes.tar", "extended roots need /e")

	out = runCLI(t, ws, "search", "--rebuild", "notes /e")
	assert.Contains(t, out, filepath.Join(ws.Extended, "archive", "notes.tar"))
}

func TestIndexCommandPersistsSnapshot(t *testing.T) {
	ws := NewWorkspace(t)

	out := runCLI(t, ws, "index")
	assert.Contains(t, out, "indexed")

	out = runCLI(t, ws, "search", "readme")
	assert.Contains(t, out, filepath.Join(ws.Home, "projects", "readme.md"))
}
